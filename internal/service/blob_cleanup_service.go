package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"workspace-be/internal/pkg/logger"
	"workspace-be/pkg/blobstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	blobCleanupMaxAttempts = 5
	blobCleanupBaseDelay   = 2 * time.Second
)

// IBlobCleanupService retries blob deletions that failed while their metadata
// was being deleted.
type IBlobCleanupService interface {
	Enqueue(ctx context.Context, key string)
	Consume(ctx context.Context) error
}

type blobCleanupMessage struct {
	Key     string `json:"key"`
	Attempt int    `json:"attempt"`
}

type blobCleanupService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	blobs     blobstore.Store
	logger    logger.ILogger
	delay     func(attempt int) time.Duration
}

func NewBlobCleanupService(
	pubSub *gochannel.GoChannel,
	topicName string,
	blobs blobstore.Store,
	log logger.ILogger,
) IBlobCleanupService {
	return &blobCleanupService{
		pubSub:    pubSub,
		topicName: topicName,
		blobs:     blobs,
		logger:    log,
		delay: func(attempt int) time.Duration {
			return blobCleanupBaseDelay << (attempt - 1)
		},
	}
}

func (s *blobCleanupService) Enqueue(ctx context.Context, key string) {
	s.publish(blobCleanupMessage{Key: key, Attempt: 1})
}

func (s *blobCleanupService) publish(payload blobCleanupMessage) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), body)); err != nil {
		s.logger.Error("BlobCleanup", "Failed to enqueue blob cleanup", map[string]interface{}{
			"key":   payload.Key,
			"error": err.Error(),
		})
	}
}

func (s *blobCleanupService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *blobCleanupService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload blobCleanupMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Key == "" {
		s.logger.Warn("BlobCleanup", "Dropping malformed cleanup message", map[string]interface{}{"message_id": msg.UUID})
		return
	}

	err := s.blobs.Delete(ctx, payload.Key)
	if err == nil || errors.Is(err, blobstore.ErrNotFound) {
		s.logger.Info("BlobCleanup", "Blob removed", map[string]interface{}{"key": payload.Key, "attempt": payload.Attempt})
		return
	}

	if payload.Attempt >= blobCleanupMaxAttempts {
		s.logger.Error("BlobCleanup", "Giving up on blob cleanup", map[string]interface{}{
			"key":     payload.Key,
			"attempt": payload.Attempt,
			"error":   err.Error(),
		})
		return
	}

	s.logger.Warn("BlobCleanup", "Blob cleanup failed, retrying", map[string]interface{}{
		"key":     payload.Key,
		"attempt": payload.Attempt,
		"error":   err.Error(),
	})
	next := blobCleanupMessage{Key: payload.Key, Attempt: payload.Attempt + 1}
	time.AfterFunc(s.delay(payload.Attempt), func() { s.publish(next) })
}

// removeBlob deletes a blob without failing the caller. A failed deletion is
// logged and handed to the cleanup queue when one is configured.
func removeBlob(ctx context.Context, blobs blobstore.Store, cleanup IBlobCleanupService, log logger.ILogger, key string) {
	if blobs == nil || key == "" {
		return
	}
	err := blobs.Delete(ctx, key)
	if err == nil || errors.Is(err, blobstore.ErrNotFound) {
		return
	}

	log.Warn("FileService", "Failed to delete blob", map[string]interface{}{
		"key":   key,
		"error": err.Error(),
	})
	if cleanup != nil {
		cleanup.Enqueue(ctx, key)
	}
}
