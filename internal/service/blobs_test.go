package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"workspace-be/pkg/blobstore"
)

// memStore keeps blobs in memory; failDeletes makes the next n deletions fail.
type memStore struct {
	mu          sync.Mutex
	blobs       map[string][]byte
	deletes     int
	failDeletes int
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (s *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = b
	return nil
}

func (s *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.failDeletes > 0 {
		s.failDeletes--
		return errors.New("storage unavailable")
	}
	if _, ok := s.blobs[key]; !ok {
		return blobstore.ErrNotFound
	}
	delete(s.blobs, key)
	return nil
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	return ok
}

func (s *memStore) deleteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

type recordingCleanup struct {
	mu   sync.Mutex
	keys []string
}

func (c *recordingCleanup) Enqueue(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, key)
}

func (c *recordingCleanup) Consume(context.Context) error { return nil }

func (c *recordingCleanup) enqueued() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.keys...)
}
