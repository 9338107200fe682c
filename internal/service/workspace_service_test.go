package service

import (
	"context"
	"testing"

	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/logger"
	"workspace-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceCRUD(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkspaceService(f.factory, newMemStore(), nil, f.notifier, logger.NewNop())
	ctx := context.Background()

	ws, err := svc.Create(ctx, &dto.CreateWorkspaceRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, &dto.UpdateWorkspaceRequest{Id: ws.Id})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	name := "Acme Inc"
	updated, err := svc.Update(ctx, &dto.UpdateWorkspaceRequest{Id: ws.Id, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", updated.Name)

	only, err := svc.List(ctx, &ws.Id)
	require.NoError(t, err)
	require.Len(t, only.Workspaces, 1)

	require.NoError(t, svc.Delete(ctx, ws.Id))
	_, err = svc.Show(ctx, ws.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteWorkspaceCascades(t *testing.T) {
	f := newFixture(t)
	store := newMemStore()
	cleanup := &recordingCleanup{}
	ctx := context.Background()

	workspaces := NewWorkspaceService(f.factory, store, cleanup, f.notifier, logger.NewNop())
	tables := NewTableService(f.factory, f.notifier)
	pages := NewPageService(f.factory, f.notifier)
	calendars := NewCalendarService(f.factory, f.notifier)
	files := NewFileService(f.factory, store, cleanup, f.notifier, logger.NewNop())

	doomed, kept := f.workspace(t, "Doomed"), f.workspace(t, "Kept")
	for _, wsId := range []uuid.UUID{doomed, kept} {
		table, err := tables.Create(ctx, &dto.CreateTableRequest{WorkspaceId: wsId, Name: "T"})
		require.NoError(t, err)
		col, err := tables.AddColumn(ctx, &dto.AddColumnRequest{TableId: table.Id, Name: "C"})
		require.NoError(t, err)
		_, err = tables.AddRow(ctx, &dto.AddRowRequest{TableId: table.Id, Cells: dto.CellValues{col.Id: rawJSON(t, "v")}})
		require.NoError(t, err)

		page, err := pages.Create(ctx, &dto.CreatePageRequest{WorkspaceId: wsId, Title: "P"})
		require.NoError(t, err)
		_, err = pages.AddBlock(ctx, &dto.AddBlockRequest{PageId: page.Id, Type: "text"})
		require.NoError(t, err)

		cal, err := calendars.Create(ctx, &dto.CreateCalendarRequest{WorkspaceId: wsId, Name: "C"})
		require.NoError(t, err)
		_, err = calendars.AddEvent(ctx, &dto.AddEventRequest{CalendarId: cal.Id, Title: "e", StartTs: at(9), EndTs: at(10)})
		require.NoError(t, err)

		upload(t, files, wsId, "f.txt", "x")
	}

	require.NoError(t, workspaces.Delete(ctx, doomed))

	for _, table := range []string{"workspaces", "tables", "table_columns", "table_rows", "table_cells", "docs_pages", "docs_blocks", "calendars", "events", "files"} {
		var count int64
		require.NoError(t, f.db.Table(table).Count(&count).Error)
		assert.EqualValues(t, 1, count, table)
	}
	assert.Len(t, store.blobs, 1)
	assert.Empty(t, cleanup.enqueued())
	assert.Contains(t, f.notifier.types(), events.WorkspaceDeleted)

	assert.ErrorIs(t, workspaces.Delete(ctx, doomed), apperror.ErrNotFound)
}
