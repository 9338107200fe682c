package contract

import (
	"context"
	"time"

	"workspace-be/internal/entity"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocsPageRepository interface {
	Create(ctx context.Context, page *entity.Page) error
	Update(ctx context.Context, page *entity.Page) error
	// Touch sets updated_at without changing anything else.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Page, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Page, error)
}

type DocsBlockRepository interface {
	Create(ctx context.Context, block *entity.Block) error
	Update(ctx context.Context, block *entity.Block) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Block, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Block, error)
}
