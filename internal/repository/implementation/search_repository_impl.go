package implementation

import (
	"context"

	"workspace-be/internal/entity"
	"workspace-be/internal/model"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/contract"
	"workspace-be/internal/repository/specification"
	"workspace-be/pkg/database"
	"workspace-be/pkg/search"

	"gorm.io/gorm"
)

const snippetLength = 200

type SearchRepositoryImpl struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) contract.SearchRepository {
	return &SearchRepositoryImpl{db: db}
}

func (r *SearchRepositoryImpl) FullTextTables(ctx context.Context) (map[string]bool, error) {
	available := make(map[string]bool)
	if database.DialectOf(r.db) != database.DialectPostgres {
		return available, nil
	}
	migrator := r.db.WithContext(ctx).Migrator()
	for _, table := range model.FullTextTables() {
		available[table] = migrator.HasColumn(table, model.SearchVectorColumn)
	}
	return available, nil
}

// match picks the condition for one lookup; vectorColumn is ignored on the
// substring path.
func match(lookup contract.SearchLookup, vectorColumn string, fields ...string) specification.Specification {
	if lookup.Strategy == search.StrategyFullText {
		return specification.FullTextMatch{Column: vectorColumn, TSQuery: lookup.Query.TSQuery}
	}
	return specification.SubstringMatch{Fields: fields, Pattern: lookup.Query.Pattern}
}

func (r *SearchRepositoryImpl) Pages(ctx context.Context, lookup contract.SearchLookup) ([]entity.PageHit, error) {
	hits := []entity.PageHit{}
	query := applySpecifications(
		r.db.WithContext(ctx).Table("docs_pages").Select("id, title, workspace_id, created_at"),
		match(lookup, model.SearchVectorColumn, "title"),
		specification.InWorkspace{Column: "workspace_id", WorkspaceID: lookup.WorkspaceID},
	)
	if err := query.Order("created_at DESC").Limit(search.ResultLimit).Scan(&hits).Error; err != nil {
		return nil, apperror.StorageFailure("search pages", err)
	}
	return hits, nil
}

func (r *SearchRepositoryImpl) Blocks(ctx context.Context, lookup contract.SearchLookup) ([]entity.BlockHit, error) {
	hits := []entity.BlockHit{}
	query := applySpecifications(
		r.db.WithContext(ctx).Table("docs_blocks b").
			Select("b.id, b.page_id, p.title AS page_title, p.workspace_id, b.search_text AS snippet").
			Joins("JOIN docs_pages p ON p.id = b.page_id"),
		match(lookup, "b."+model.SearchVectorColumn, "b.search_text"),
		specification.InWorkspace{Column: "p.workspace_id", WorkspaceID: lookup.WorkspaceID},
	)
	if err := query.Order("b.order_index ASC").Limit(search.ResultLimit).Scan(&hits).Error; err != nil {
		return nil, apperror.StorageFailure("search blocks", err)
	}
	for i := range hits {
		hits[i].Snippet = truncateRunes(hits[i].Snippet, snippetLength)
	}
	return hits, nil
}

func (r *SearchRepositoryImpl) Tables(ctx context.Context, lookup contract.SearchLookup) ([]entity.TableHit, error) {
	hits := []entity.TableHit{}
	query := applySpecifications(
		r.db.WithContext(ctx).Table("tables").Select("id, name, workspace_id, created_at"),
		match(lookup, model.SearchVectorColumn, "name"),
		specification.InWorkspace{Column: "workspace_id", WorkspaceID: lookup.WorkspaceID},
	)
	if err := query.Order("created_at DESC").Limit(search.ResultLimit).Scan(&hits).Error; err != nil {
		return nil, apperror.StorageFailure("search tables", err)
	}
	return hits, nil
}

func (r *SearchRepositoryImpl) Events(ctx context.Context, lookup contract.SearchLookup) ([]entity.EventHit, error) {
	hits := []entity.EventHit{}
	query := applySpecifications(
		r.db.WithContext(ctx).Table("events e").
			Select("e.id, e.title, e.start_ts, e.end_ts, c.workspace_id").
			Joins("JOIN calendars c ON c.id = e.calendar_id"),
		match(lookup, "e."+model.SearchVectorColumn, "e.title", "e.description"),
		specification.InWorkspace{Column: "c.workspace_id", WorkspaceID: lookup.WorkspaceID},
	)
	if err := query.Order("e.start_ts DESC").Limit(search.ResultLimit).Scan(&hits).Error; err != nil {
		return nil, apperror.StorageFailure("search events", err)
	}
	return hits, nil
}

func (r *SearchRepositoryImpl) Files(ctx context.Context, lookup contract.SearchLookup) ([]entity.FileHit, error) {
	hits := []entity.FileHit{}
	query := applySpecifications(
		r.db.WithContext(ctx).Table("files").Select("id, filename, workspace_id, content_type, size_bytes, created_at"),
		match(lookup, model.SearchVectorColumn, "filename"),
		specification.InWorkspace{Column: "workspace_id", WorkspaceID: lookup.WorkspaceID},
	)
	if err := query.Order("created_at DESC").Limit(search.ResultLimit).Scan(&hits).Error; err != nil {
		return nil, apperror.StorageFailure("search files", err)
	}
	return hits, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
