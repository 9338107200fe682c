package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"workspace-be/internal/dto"
	"workspace-be/internal/entity"
	"workspace-be/internal/model"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/logger"
	"workspace-be/internal/repository/contract"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/cache"
	"workspace-be/pkg/search"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const searchCachePrefix = "search:"

type ISearchService interface {
	SearchInvalidator
	// Probe records which tables carry a full-text index. Until it runs every
	// lookup uses substring matching.
	Probe(ctx context.Context) error
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type SearchOptions struct {
	Timeout  time.Duration
	Cache    cache.Cache
	CacheTTL time.Duration
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	opts       SearchOptions

	mu      sync.RWMutex
	indexed map[string]bool
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, opts SearchOptions) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		logger:     log,
		opts:       opts,
		indexed:    map[string]bool{},
	}
}

func (c *searchService) Probe(ctx context.Context) error {
	indexed, err := c.uowFactory.NewUnitOfWork(ctx).SearchRepository().FullTextTables(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.indexed = indexed
	c.mu.Unlock()

	c.logger.Info("SearchService", "Full-text capability probed", map[string]interface{}{"indexed": indexed})
	return nil
}

func (c *searchService) strategy(q search.Query, table string) search.Strategy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return q.StrategyFor(c.indexed[table])
}

// lookup runs one per-kind query. A failing full-text query is retried with
// substring matching; if that fails too the kind contributes no results.
func lookup[T any](
	ctx context.Context,
	c *searchService,
	kind string,
	table string,
	base contract.SearchLookup,
	run func(context.Context, contract.SearchLookup) ([]T, error),
) []T {
	ctx, span := otel.Tracer("search").Start(ctx, "search."+kind)
	defer span.End()

	l := base
	l.Strategy = c.strategy(base.Query, table)
	span.SetAttributes(attribute.String("search.strategy", l.Strategy.String()))

	hits, err := run(ctx, l)
	if err != nil && l.Strategy == search.StrategyFullText && ctx.Err() == nil {
		c.logger.Warn("SearchService", "Full-text lookup failed, falling back to substring", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		l.Strategy = search.StrategySubstring
		span.SetAttributes(attribute.Bool("search.fallback", true))
		hits, err = run(ctx, l)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("SearchService", "Lookup failed", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return []T{}
	}
	if hits == nil {
		hits = []T{}
	}
	return hits
}

// Search fans out five independent lookups and waits for all of them. The
// request context bounds the fan-out, so abandoned requests stop early.
func (c *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	q := search.ParseQuery(req.Query)
	if q.Blank() {
		return nil, apperror.InvalidArgument("missing q")
	}

	key := cacheKey(req.WorkspaceId, q.Raw)
	if c.opts.Cache != nil && c.opts.CacheTTL > 0 {
		var cached dto.SearchResponse
		if ok, err := c.opts.Cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	repo := c.uowFactory.NewUnitOfWork(ctx).SearchRepository()
	base := contract.SearchLookup{Query: q, WorkspaceID: req.WorkspaceId}

	var (
		pages  []entity.PageHit
		blocks []entity.BlockHit
		tables []entity.TableHit
		evts   []entity.EventHit
		files  []entity.FileHit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pages = lookup(gctx, c, "pages", model.DocsPage{}.TableName(), base, repo.Pages)
		return nil
	})
	g.Go(func() error {
		blocks = lookup(gctx, c, "blocks", model.DocsBlock{}.TableName(), base, repo.Blocks)
		return nil
	})
	g.Go(func() error {
		tables = lookup(gctx, c, "tables", model.Table{}.TableName(), base, repo.Tables)
		return nil
	})
	g.Go(func() error {
		evts = lookup(gctx, c, "events", model.Event{}.TableName(), base, repo.Events)
		return nil
	})
	g.Go(func() error {
		files = lookup(gctx, c, "files", model.File{}.TableName(), base, repo.Files)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := newSearchResponse(q.Raw, pages, blocks, tables, evts, files)
	if c.opts.Cache != nil && c.opts.CacheTTL > 0 {
		if err := c.opts.Cache.Set(ctx, key, res, c.opts.CacheTTL); err != nil {
			c.logger.Warn("SearchService", "Failed to cache search result", map[string]interface{}{"error": err.Error()})
		}
	}
	return res, nil
}

func (c *searchService) Invalidate(ctx context.Context) {
	if c.opts.Cache == nil {
		return
	}
	if err := c.opts.Cache.DeletePrefix(ctx, searchCachePrefix); err != nil {
		c.logger.Warn("SearchService", "Failed to invalidate search cache", map[string]interface{}{"error": err.Error()})
	}
}

func cacheKey(workspaceId *uuid.UUID, raw string) string {
	scope := "*"
	if workspaceId != nil {
		scope = workspaceId.String()
	}
	return searchCachePrefix + scope + ":" + strings.ToLower(raw)
}

func newSearchResponse(query string, pages []entity.PageHit, blocks []entity.BlockHit, tables []entity.TableHit, evts []entity.EventHit, files []entity.FileHit) *dto.SearchResponse {
	res := &dto.SearchResponse{
		Query: query,
		Results: dto.SearchResults{
			Pages:  make([]dto.PageHit, 0, len(pages)),
			Blocks: make([]dto.BlockHit, 0, len(blocks)),
			Tables: make([]dto.TableHit, 0, len(tables)),
			Events: make([]dto.EventHit, 0, len(evts)),
			Files:  make([]dto.FileHit, 0, len(files)),
		},
	}
	for _, h := range pages {
		res.Results.Pages = append(res.Results.Pages, dto.PageHit{Id: h.Id, Title: h.Title, WorkspaceId: h.WorkspaceId, Type: "page", CreatedAt: h.CreatedAt})
	}
	for _, h := range blocks {
		res.Results.Blocks = append(res.Results.Blocks, dto.BlockHit{Id: h.Id, PageId: h.PageId, PageTitle: h.PageTitle, WorkspaceId: h.WorkspaceId, Type: "block", Snippet: h.Snippet})
	}
	for _, h := range tables {
		res.Results.Tables = append(res.Results.Tables, dto.TableHit{Id: h.Id, Name: h.Name, WorkspaceId: h.WorkspaceId, Type: "table", CreatedAt: h.CreatedAt})
	}
	for _, h := range evts {
		res.Results.Events = append(res.Results.Events, dto.EventHit{Id: h.Id, Title: h.Title, StartTs: h.StartTs, EndTs: h.EndTs, WorkspaceId: h.WorkspaceId, Type: "event"})
	}
	for _, h := range files {
		res.Results.Files = append(res.Results.Files, dto.FileHit{Id: h.Id, Filename: h.Filename, WorkspaceId: h.WorkspaceId, ContentType: h.ContentType, SizeBytes: h.SizeBytes, Type: "file", CreatedAt: h.CreatedAt})
	}
	res.Total = len(pages) + len(blocks) + len(tables) + len(evts) + len(files)
	return res
}
