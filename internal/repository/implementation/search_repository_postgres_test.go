package implementation

import (
	"context"
	"log"
	"os"
	"testing"

	"workspace-be/internal/model"
	"workspace-be/internal/repository/contract"
	"workspace-be/pkg/database"
	"workspace-be/pkg/search"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	gormlogger "gorm.io/gorm/logger"
)

// TestPostgresFullTextSearch needs a disposable Postgres database in
// TEST_DB_CONNECTION_STRING and is skipped otherwise.
func TestPostgresFullTextSearch(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DB_CONNECTION_STRING not set")
	}

	db, err := database.Open(dsn, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	for _, stmt := range model.FullTextStatements() {
		require.NoError(t, db.Exec(stmt).Error)
	}

	ctx := context.Background()
	ws := model.Workspace{Name: "fts-" + uuid.NewString()}
	require.NoError(t, db.Create(&ws).Error)
	t.Cleanup(func() { db.Delete(&model.Workspace{}, "id = ?", ws.Id) })

	page := model.DocsPage{WorkspaceId: ws.Id, Title: "Quarterly planning"}
	require.NoError(t, db.Create(&page).Error)
	require.NoError(t, db.Create(&model.DocsBlock{
		PageId:     page.Id,
		Kind:       "text",
		Data:       datatypes.JSON(`{"text":"Budget review with finance"}`),
		SearchText: "Budget review with finance",
	}).Error)

	table := model.Table{WorkspaceId: ws.Id, Name: "Planning tracker"}
	require.NoError(t, db.Create(&table).Error)
	file := model.File{WorkspaceId: ws.Id, Filename: "planning_notes.pdf", StoragePath: "k"}
	require.NoError(t, db.Create(&file).Error)

	repo := NewSearchRepository(db)

	indexed, err := repo.FullTextTables(ctx)
	require.NoError(t, err)
	assert.True(t, indexed["docs_pages"])
	assert.True(t, indexed["docs_blocks"])
	assert.True(t, indexed["events"])
	assert.True(t, indexed["tables"])
	assert.True(t, indexed["files"])

	t.Run("full text", func(t *testing.T) {
		lookup := contract.SearchLookup{
			Query:       search.ParseQuery("planning"),
			Strategy:    search.StrategyFullText,
			WorkspaceID: &ws.Id,
		}
		pages, err := repo.Pages(ctx, lookup)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, page.Id, pages[0].Id)

		lookup.Query = search.ParseQuery("finance")
		blocks, err := repo.Blocks(ctx, lookup)
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "Quarterly planning", blocks[0].PageTitle)

		lookup.Query = search.ParseQuery("tracker")
		tables, err := repo.Tables(ctx, lookup)
		require.NoError(t, err)
		require.Len(t, tables, 1)
		assert.Equal(t, table.Id, tables[0].Id)

		lookup.Query = search.ParseQuery("notes pdf")
		files, err := repo.Files(ctx, lookup)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, file.Id, files[0].Id)
	})

	t.Run("substring ignores case", func(t *testing.T) {
		pages, err := repo.Pages(ctx, contract.SearchLookup{
			Query:       search.ParseQuery("QUARTER"),
			Strategy:    search.StrategySubstring,
			WorkspaceID: &ws.Id,
		})
		require.NoError(t, err)
		assert.Len(t, pages, 1)
	})
}
