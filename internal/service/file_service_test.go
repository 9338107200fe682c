package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(t *testing.T, svc IFileService, ws uuid.UUID, name, body string) *dto.UploadFileResponse {
	t.Helper()
	res, err := svc.Upload(context.Background(), &dto.UploadFileRequest{
		WorkspaceId: ws,
		Filename:    name,
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	})
	require.NoError(t, err)
	return res
}

func TestUploadAndDownload(t *testing.T) {
	f := newFixture(t)
	store := newMemStore()
	svc := NewFileService(f.factory, store, nil, f.notifier, logger.NewNop())
	ctx := context.Background()

	res := upload(t, svc, f.workspace(t, "W"), "my report (final).pdf", "hello")
	assert.Equal(t, "my_report_final_.pdf", res.Filename)
	assert.True(t, store.has(res.Id.String()+"__my_report_final_.pdf"))

	meta, err := svc.Show(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", meta.ContentType)
	assert.EqualValues(t, 5, meta.SizeBytes)

	dl, err := svc.Download(ctx, res.Id)
	require.NoError(t, err)
	defer dl.Body.Close()
	body, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestUploadToMissingWorkspace(t *testing.T) {
	f := newFixture(t)
	store := newMemStore()
	svc := NewFileService(f.factory, store, nil, f.notifier, logger.NewNop())

	_, err := svc.Upload(context.Background(), &dto.UploadFileRequest{WorkspaceId: uuid.New(), Filename: "a", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, store.blobs)
}

func TestDeleteFileSucceedsWhenBlobDeleteFails(t *testing.T) {
	f := newFixture(t)
	store := newMemStore()
	cleanup := &recordingCleanup{}
	svc := NewFileService(f.factory, store, cleanup, f.notifier, logger.NewNop())
	ctx := context.Background()

	res := upload(t, svc, f.workspace(t, "W"), "a.txt", "x")
	store.failDeletes = 1

	require.NoError(t, svc.Delete(ctx, res.Id))

	_, err := svc.Show(ctx, res.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, []string{res.Id.String() + "__a.txt"}, cleanup.enqueued())
}

func TestDownloadMissingBlob(t *testing.T) {
	f := newFixture(t)
	store := newMemStore()
	svc := NewFileService(f.factory, store, nil, f.notifier, logger.NewNop())

	res := upload(t, svc, f.workspace(t, "W"), "a.txt", "x")
	delete(store.blobs, res.Id.String()+"__a.txt")

	_, err := svc.Download(context.Background(), res.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListFilesScopedByWorkspace(t *testing.T) {
	f := newFixture(t)
	svc := NewFileService(f.factory, newMemStore(), nil, f.notifier, logger.NewNop())
	ctx := context.Background()

	a, b := f.workspace(t, "A"), f.workspace(t, "B")
	upload(t, svc, a, "one.txt", "1")
	upload(t, svc, b, "two.txt", "2")

	scoped, err := svc.List(ctx, &a)
	require.NoError(t, err)
	require.Len(t, scoped.Files, 1)
	assert.Equal(t, "one.txt", scoped.Files[0].Filename)
	assert.Equal(t, "A", scoped.Files[0].WorkspaceName)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Files, 2)
}
