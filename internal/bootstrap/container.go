package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"workspace-be/internal/config"
	"workspace-be/internal/controller"
	"workspace-be/internal/pkg/logger"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/internal/service"
	"workspace-be/pkg/blobstore"
	"workspace-be/pkg/cache"
	"workspace-be/pkg/events"
	pktNats "workspace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	WorkspaceController controller.IWorkspaceController
	TableController     controller.ITableController
	DocsController      controller.IDocsController
	CalendarController  controller.ICalendarController
	FileController      controller.IFileController
	SearchController    controller.ISearchController
	ExportController    controller.IExportController
	HealthController    controller.IHealthController

	// Background services, started by main
	BlobCleanupService service.IBlobCleanupService
	SearchService      service.ISearchService
	SearchCacheService *service.SearchCacheService

	closers []func()
}

// NewContainer wires every dependency. NATS and Redis are optional: when
// their URLs are empty or unreachable the service runs without them.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return newContainer(db, cfg, sysLogger)
}

func newContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}
	uowFactory := unitofwork.NewRepositoryFactory(db)

	blobs, err := newBlobStore(cfg)
	if err != nil {
		return nil, err
	}

	// In-process queue for blob cleanup retries
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	c.BlobCleanupService = service.NewBlobCleanupService(pubSub, cfg.App.BlobCleanupTopic, blobs, sysLogger)

	var publisher events.Publisher
	var subscriber *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
		if subscriber, err = pktNats.NewSubscriber(cfg.App.NatsURL); err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			subscriber = nil
		} else {
			c.closers = append(c.closers, subscriber.Close)
		}
	}

	c.SearchService = service.NewSearchService(uowFactory, sysLogger, service.SearchOptions{
		Timeout:  cfg.Search.Timeout,
		Cache:    newSearchCache(cfg),
		CacheTTL: cfg.Search.CacheTTL,
	})
	if subscriber != nil && cfg.Search.CacheTTL > 0 {
		c.SearchCacheService = service.NewSearchCacheService(subscriber, c.SearchService, sysLogger)
	}

	notifier := service.NewChangeNotifier(publisher, c.SearchService, sysLogger)

	workspaceService := service.NewWorkspaceService(uowFactory, blobs, c.BlobCleanupService, notifier, sysLogger)
	tableService := service.NewTableService(uowFactory, notifier)
	pageService := service.NewPageService(uowFactory, notifier)
	calendarService := service.NewCalendarService(uowFactory, notifier)
	fileService := service.NewFileService(uowFactory, blobs, c.BlobCleanupService, notifier, sysLogger)
	exportService := service.NewExportService(uowFactory)
	owners := service.NewOwnershipService(uowFactory)

	c.WorkspaceController = controller.NewWorkspaceController(workspaceService)
	c.TableController = controller.NewTableController(tableService, owners)
	c.DocsController = controller.NewDocsController(pageService, owners)
	c.CalendarController = controller.NewCalendarController(calendarService, owners)
	c.FileController = controller.NewFileController(fileService, owners)
	c.SearchController = controller.NewSearchController(c.SearchService)
	c.ExportController = controller.NewExportController(exportService, owners)
	c.HealthController = controller.NewHealthController(db)

	return c, nil
}

// Start runs the capability probe and the background consumers.
func (c *Container) Start(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.SearchService.Probe(probeCtx); err != nil {
		c.Logger.Warn("Bootstrap", "Full-text probe failed, search uses substring matching", map[string]interface{}{"error": err.Error()})
	}

	if err := c.BlobCleanupService.Consume(ctx); err != nil {
		return fmt.Errorf("start blob cleanup consumer: %w", err)
	}
	if c.SearchCacheService != nil {
		c.SearchCacheService.Start(ctx)
	}
	return nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newBlobStore(cfg *config.Config) (blobstore.Store, error) {
	switch cfg.Storage.Driver {
	case "s3":
		store, err := blobstore.NewS3Store(blobstore.S3Config{
			Endpoint:  cfg.Storage.S3.Endpoint,
			Region:    cfg.Storage.S3.Region,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Bucket:    cfg.Storage.S3.Bucket,
			UseSSL:    cfg.Storage.S3.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 blob store: %w", err)
		}
		return store, nil
	default:
		store, err := blobstore.NewLocalStore(cfg.Storage.FilesDir)
		if err != nil {
			return nil, fmt.Errorf("local blob store: %w", err)
		}
		return store, nil
	}
}

// newSearchCache prefers Redis and falls back to an in-process cache. A zero
// TTL disables caching.
func newSearchCache(cfg *config.Config) cache.Cache {
	if cfg.Search.CacheTTL <= 0 {
		return nil
	}
	if cfg.App.RedisURL != "" {
		rdb := cache.NewRedisClient(cfg.App.RedisURL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err == nil {
			return cache.NewRedisCache(rdb)
		} else {
			log.Printf("[WARN] Failed to connect to Redis: %v, using in-memory search cache", err)
		}
	}
	return cache.NewMemoryCache(cfg.Search.CacheTTL)
}
