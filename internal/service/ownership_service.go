package service

import (
	"context"

	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// OwnerKind names an entity addressed by its own id in a route.
type OwnerKind string

const (
	OwnerTable    OwnerKind = "table"
	OwnerRow      OwnerKind = "row"
	OwnerPage     OwnerKind = "page"
	OwnerCalendar OwnerKind = "calendar"
	OwnerFile     OwnerKind = "file"
)

// IOwnershipService resolves the workspace that owns an entity, so callers
// scoped to one workspace can be checked before acting on it.
type IOwnershipService interface {
	WorkspaceOf(ctx context.Context, kind OwnerKind, id uuid.UUID) (uuid.UUID, error)
}

type ownershipService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewOwnershipService(uowFactory unitofwork.RepositoryFactory) IOwnershipService {
	return &ownershipService{uowFactory: uowFactory}
}

func (c *ownershipService) WorkspaceOf(ctx context.Context, kind OwnerKind, id uuid.UUID) (uuid.UUID, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	switch kind {
	case OwnerTable:
		table, err := requireTable(ctx, uow, id)
		if err != nil {
			return uuid.Nil, err
		}
		return table.WorkspaceId, nil
	case OwnerRow:
		row, err := requireRow(ctx, uow, id)
		if err != nil {
			return uuid.Nil, err
		}
		table, err := requireTable(ctx, uow, row.TableId)
		if err != nil {
			return uuid.Nil, err
		}
		return table.WorkspaceId, nil
	case OwnerPage:
		page, err := requirePage(ctx, uow, id)
		if err != nil {
			return uuid.Nil, err
		}
		return page.WorkspaceId, nil
	case OwnerCalendar:
		calendar, err := requireCalendar(ctx, uow, id)
		if err != nil {
			return uuid.Nil, err
		}
		return calendar.WorkspaceId, nil
	case OwnerFile:
		file, err := requireFile(ctx, uow, id)
		if err != nil {
			return uuid.Nil, err
		}
		return file.WorkspaceId, nil
	default:
		return uuid.Nil, apperror.InvalidArgument("unknown entity kind %q", kind)
	}
}
