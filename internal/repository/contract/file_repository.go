package contract

import (
	"context"

	"workspace-be/internal/entity"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error)
	// FindAll fills WorkspaceName on every returned file.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error)
}
