package service

import (
	"context"

	"workspace-be/internal/pkg/logger"
	"workspace-be/pkg/events"
	pktNats "workspace-be/pkg/nats"
)

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, handler pktNats.EventHandler) error
}

// SearchCacheService drops cached search results whenever any instance
// publishes a mutation, so instances sharing one cache stay consistent.
type SearchCacheService struct {
	subscriber  EventSubscriber
	invalidator SearchInvalidator
	logger      logger.ILogger
}

func NewSearchCacheService(sub EventSubscriber, invalidator SearchInvalidator, log logger.ILogger) *SearchCacheService {
	return &SearchCacheService{
		subscriber:  sub,
		invalidator: invalidator,
		logger:      log,
	}
}

func (s *SearchCacheService) Start(ctx context.Context) {
	if err := s.subscriber.Subscribe(ctx, pktNats.Subject(">"), s.handleEvent); err != nil {
		s.logger.Error("SearchCacheService", "Failed to start search cache subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("SearchCacheService", "Listening to events.>", nil)
}

func (s *SearchCacheService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Debug("SearchCacheService", "Invalidating search cache", map[string]interface{}{"type": event.EventType()})
	s.invalidator.Invalidate(ctx)
	return nil
}
