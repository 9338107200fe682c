package contract

import (
	"context"

	"workspace-be/internal/entity"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CalendarRepository interface {
	Create(ctx context.Context, calendar *entity.Calendar) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Calendar, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Calendar, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error)
}
