package service

import (
	"context"
	"testing"
	"time"

	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageFixture(t *testing.T) (*fixture, *pageService, uuid.UUID) {
	f := newFixture(t)
	svc := NewPageService(f.factory, f.notifier).(*pageService)
	page, err := svc.Create(context.Background(), &dto.CreatePageRequest{WorkspaceId: f.workspace(t, "W"), Title: "Notes"})
	require.NoError(t, err)
	return f, svc, page.Id
}

func TestBlockMutationsAdvanceUpdatedAtWithFrozenClock(t *testing.T) {
	_, svc, pageId := newPageFixture(t)
	ctx := context.Background()

	frozen := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	var previous time.Time
	for i := 0; i < 3; i++ {
		_, err := svc.AddBlock(ctx, &dto.AddBlockRequest{PageId: pageId, Type: "text", Data: rawJSON(t, map[string]string{"content": "x"})})
		require.NoError(t, err)

		view, err := svc.Show(ctx, pageId)
		require.NoError(t, err)
		require.NotNil(t, view.Page.UpdatedAt)
		assert.True(t, view.Page.UpdatedAt.After(previous), "updatedAt must strictly increase")
		assert.True(t, view.Page.UpdatedAt.After(view.Page.CreatedAt))
		previous = *view.Page.UpdatedAt
	}
}

func TestPageBlocksOrderedByIndex(t *testing.T) {
	_, svc, pageId := newPageFixture(t)
	ctx := context.Background()

	for _, idx := range []int{2, 0, 1} {
		i := idx
		_, err := svc.AddBlock(ctx, &dto.AddBlockRequest{PageId: pageId, Type: "heading", Data: rawJSON(t, map[string]interface{}{"level": 1, "content": "h"}), OrderIndex: &i})
		require.NoError(t, err)
	}

	view, err := svc.Show(ctx, pageId)
	require.NoError(t, err)
	require.Len(t, view.Blocks, 3)
	for i, b := range view.Blocks {
		assert.Equal(t, i, b.OrderIndex)
	}
}

func TestUpdateBlockPartialPatch(t *testing.T) {
	_, svc, pageId := newPageFixture(t)
	ctx := context.Background()

	block, err := svc.AddBlock(ctx, &dto.AddBlockRequest{PageId: pageId, Type: "text", Data: rawJSON(t, map[string]string{"content": "keep me"})})
	require.NoError(t, err)

	_, err = svc.UpdateBlock(ctx, &dto.UpdateBlockRequest{PageId: pageId, BlockId: block.Id})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	five := 5
	updated, err := svc.UpdateBlock(ctx, &dto.UpdateBlockRequest{PageId: pageId, BlockId: block.Id, OrderIndex: &five})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.OrderIndex)
	assert.Equal(t, "text", updated.Type)
	assert.JSONEq(t, `{"content":"keep me"}`, string(updated.Data))

	code := "code"
	updated, err = svc.UpdateBlock(ctx, &dto.UpdateBlockRequest{PageId: pageId, BlockId: block.Id, Type: &code})
	require.NoError(t, err)
	assert.Equal(t, "code", updated.Type)
	assert.JSONEq(t, `{"content":"keep me"}`, string(updated.Data))
}

func TestBlockOfAnotherPageIsNotFound(t *testing.T) {
	f, svc, pageId := newPageFixture(t)
	ctx := context.Background()

	other, err := svc.Create(ctx, &dto.CreatePageRequest{WorkspaceId: f.workspace(t, "X"), Title: "Other"})
	require.NoError(t, err)
	block, err := svc.AddBlock(ctx, &dto.AddBlockRequest{PageId: other.Id, Type: "text"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteBlock(ctx, pageId, block.Id), apperror.ErrNotFound)
	require.NoError(t, svc.DeleteBlock(ctx, other.Id, block.Id))
}

func TestUpdatePageRequiresTitle(t *testing.T) {
	_, svc, pageId := newPageFixture(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, &dto.UpdatePageRequest{Id: pageId})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	title := "Renamed"
	page, err := svc.Update(ctx, &dto.UpdatePageRequest{Id: pageId, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", page.Title)
	assert.NotNil(t, page.UpdatedAt)
}

func TestPageMarkdownExport(t *testing.T) {
	f, svc, pageId := newPageFixture(t)
	ctx := context.Background()

	_, err := svc.AddBlock(ctx, &dto.AddBlockRequest{PageId: pageId, Type: "heading", Data: rawJSON(t, map[string]interface{}{"level": 2, "content": "Intro"})})
	require.NoError(t, err)

	doc, err := NewExportService(f.factory).Export(ctx, ExportKindPage, pageId, "md")
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "## Intro")
	assert.Equal(t, "Notes.md", doc.Filename)

	_, err = NewExportService(f.factory).Export(ctx, ExportKindPage, pageId, "csv")
	assert.ErrorIs(t, err, apperror.ErrUnsupportedFormat)
}

func TestDeletePageRemovesBlocks(t *testing.T) {
	f, svc, pageId := newPageFixture(t)
	ctx := context.Background()

	_, err := svc.AddBlock(ctx, &dto.AddBlockRequest{PageId: pageId, Type: "text"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, pageId))

	var count int64
	require.NoError(t, f.db.Table("docs_blocks").Count(&count).Error)
	assert.Zero(t, count)
	assert.Contains(t, f.notifier.types(), events.PageDeleted)
}

func TestListPagesOrderedByLastTouch(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		touchAt time.Time
		want    []string
	}{
		// A is touched after every creation time.
		{"touched page first", base.Add(time.Hour), []string{"A", "C", "B"}},
		{"touched page first with local clock", base.Add(time.Hour).In(ny), []string{"A", "C", "B"}},
		// A's touch equals C's creation, so creation time breaks the tie.
		{"tie broken by creation", base.Add(2 * time.Minute), []string{"C", "A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewPageService(f.factory, f.notifier).(*pageService)
			ctx := context.Background()
			ws := f.workspace(t, "W")

			ids := map[string]uuid.UUID{}
			for i, title := range []string{"A", "B", "C"} {
				page, err := svc.Create(ctx, &dto.CreatePageRequest{WorkspaceId: ws, Title: title})
				require.NoError(t, err)
				ids[title] = page.Id
				require.NoError(t, f.db.Table("docs_pages").Where("id = ?", page.Id).
					Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
			}

			svc.now = func() time.Time { return tt.touchAt }
			_, err := svc.AddBlock(ctx, &dto.AddBlockRequest{PageId: ids["A"], Type: "text", Data: rawJSON(t, map[string]string{"content": "x"})})
			require.NoError(t, err)

			res, err := svc.List(ctx, &ws)
			require.NoError(t, err)
			titles := make([]string, 0, len(res.Pages))
			for _, p := range res.Pages {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}
