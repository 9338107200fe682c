package contract

import (
	"context"

	"workspace-be/internal/entity"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Table, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Table, error)
}

type TableColumnRepository interface {
	Create(ctx context.Context, column *entity.Column) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Column, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Column, error)
}

type TableRowRepository interface {
	Create(ctx context.Context, row *entity.Row) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Row, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Row, error)
}

type TableCellRepository interface {
	// Upsert writes one cell in a single statement keyed on (row, column).
	Upsert(ctx context.Context, cell *entity.Cell) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cell, error)
}
