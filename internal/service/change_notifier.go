package service

import (
	"context"

	"workspace-be/internal/pkg/logger"
	"workspace-be/pkg/events"
)

// IChangeNotifier is told about every committed mutation. It never fails the
// request that triggered it.
type IChangeNotifier interface {
	Notify(ctx context.Context, eventType string, data map[string]interface{})
}

// SearchInvalidator drops cached search results.
type SearchInvalidator interface {
	Invalidate(ctx context.Context)
}

type changeNotifier struct {
	publisher   events.Publisher
	invalidator SearchInvalidator
	logger      logger.ILogger
}

// NewChangeNotifier accepts a nil publisher and a nil invalidator.
func NewChangeNotifier(publisher events.Publisher, invalidator SearchInvalidator, log logger.ILogger) IChangeNotifier {
	return &changeNotifier{
		publisher:   publisher,
		invalidator: invalidator,
		logger:      log,
	}
}

func (n *changeNotifier) Notify(ctx context.Context, eventType string, data map[string]interface{}) {
	if n.invalidator != nil {
		n.invalidator.Invalidate(ctx)
	}
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		n.logger.Warn("ChangeNotifier", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
