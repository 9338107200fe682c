package blobstore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "f1__notes.txt", strings.NewReader("hello"), 5, "text/plain"))

	rc, err := store.Open(ctx, "f1__notes.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(data))

	// write-once
	assert.Error(t, store.Put(ctx, "f1__notes.txt", strings.NewReader("again"), 5, "text/plain"))

	require.NoError(t, store.Delete(ctx, "f1__notes.txt"))
	assert.ErrorIs(t, store.Delete(ctx, "f1__notes.txt"), ErrNotFound)

	_, err = store.Open(ctx, "f1__notes.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreRejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		assert.Error(t, store.Put(ctx, key, strings.NewReader("x"), 1, ""), key)
	}
}
