package contract

import (
	"context"

	"workspace-be/internal/entity"
	"workspace-be/pkg/search"

	"github.com/google/uuid"
)

// SearchLookup narrows one per-kind lookup.
type SearchLookup struct {
	Query       search.Query
	Strategy    search.Strategy
	WorkspaceID *uuid.UUID
}

type SearchRepository interface {
	// FullTextTables reports which tables carry a search vector column.
	FullTextTables(ctx context.Context) (map[string]bool, error)

	Pages(ctx context.Context, lookup SearchLookup) ([]entity.PageHit, error)
	Blocks(ctx context.Context, lookup SearchLookup) ([]entity.BlockHit, error)
	Tables(ctx context.Context, lookup SearchLookup) ([]entity.TableHit, error)
	Events(ctx context.Context, lookup SearchLookup) ([]entity.EventHit, error)
	Files(ctx context.Context, lookup SearchLookup) ([]entity.FileHit, error)
}
