package service

import (
	"context"
	"testing"
	"time"

	"workspace-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCleanup(t *testing.T, store *memStore) *blobCleanupService {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	svc := NewBlobCleanupService(pubSub, "blob_cleanup_test", store, logger.NewNop()).(*blobCleanupService)
	svc.delay = func(int) time.Duration { return time.Millisecond }
	require.NoError(t, svc.Consume(context.Background()))
	return svc
}

func TestBlobCleanupRetriesUntilDeleted(t *testing.T) {
	store := newMemStore()
	store.blobs["k"] = []byte("x")
	store.failDeletes = 2

	svc := newTestCleanup(t, store)
	svc.Enqueue(context.Background(), "k")

	assert.Eventually(t, func() bool { return !store.has("k") }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, store.deleteCalls())
}

func TestBlobCleanupGivesUp(t *testing.T) {
	store := newMemStore()
	store.blobs["k"] = []byte("x")
	store.failDeletes = 100

	svc := newTestCleanup(t, store)
	svc.Enqueue(context.Background(), "k")

	assert.Eventually(t, func() bool { return store.deleteCalls() == blobCleanupMaxAttempts }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, blobCleanupMaxAttempts, store.deleteCalls())
	assert.True(t, store.has("k"))
}

func TestRemoveBlobIgnoresMissing(t *testing.T) {
	store := newMemStore()
	cleanup := &recordingCleanup{}

	removeBlob(context.Background(), store, cleanup, logger.NewNop(), "absent")
	assert.Empty(t, cleanup.enqueued())
}
