package service

import (
	"context"
	"errors"
	"testing"

	"workspace-be/internal/pkg/logger"
	"workspace-be/pkg/events"
	pktNats "workspace-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

type stubPublisher struct {
	published []events.Event
	err       error
}

func (p *stubPublisher) Publish(_ context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return p.err
}

func TestChangeNotifierInvalidatesAndPublishes(t *testing.T) {
	inv := &countingInvalidator{}
	pub := &stubPublisher{}
	n := NewChangeNotifier(pub, inv, logger.NewNop())

	n.Notify(context.Background(), events.TableChanged, map[string]interface{}{"table_id": "t1"})

	assert.Equal(t, 1, inv.calls)
	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TableChanged, pub.published[0].EventType())
	assert.Equal(t, "t1", pub.published[0].Payload()["table_id"])
}

func TestChangeNotifierSwallowsPublishErrors(t *testing.T) {
	inv := &countingInvalidator{}
	n := NewChangeNotifier(&stubPublisher{err: errors.New("nats down")}, inv, logger.NewNop())

	assert.NotPanics(t, func() { n.Notify(context.Background(), events.PageUpdated, nil) })
	assert.Equal(t, 1, inv.calls)

	assert.NotPanics(t, func() {
		NewChangeNotifier(nil, nil, logger.NewNop()).Notify(context.Background(), events.PageUpdated, nil)
	})
}

type stubSubscriber struct {
	subject string
	handler pktNats.EventHandler
}

func (s *stubSubscriber) Subscribe(_ context.Context, subject string, handler pktNats.EventHandler) error {
	s.subject, s.handler = subject, handler
	return nil
}

func TestSearchCacheServiceInvalidatesOnAnyEvent(t *testing.T) {
	sub := &stubSubscriber{}
	inv := &countingInvalidator{}
	NewSearchCacheService(sub, inv, logger.NewNop()).Start(context.Background())

	assert.Equal(t, "events.>", sub.subject)
	require.NotNil(t, sub.handler)
	require.NoError(t, sub.handler(context.Background(), events.New(events.FileDeleted, nil)))
	assert.Equal(t, 1, inv.calls)
}
