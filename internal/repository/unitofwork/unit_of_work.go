package unitofwork

import (
	"context"

	"workspace-be/internal/repository/contract"
)

// UnitOfWork hands out repositories bound to one transaction once Begin is
// called, or to the plain connection otherwise.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkspaceRepository() contract.WorkspaceRepository
	TableRepository() contract.TableRepository
	TableColumnRepository() contract.TableColumnRepository
	TableRowRepository() contract.TableRowRepository
	TableCellRepository() contract.TableCellRepository
	DocsPageRepository() contract.DocsPageRepository
	DocsBlockRepository() contract.DocsBlockRepository
	CalendarRepository() contract.CalendarRepository
	EventRepository() contract.EventRepository
	FileRepository() contract.FileRepository
	SearchRepository() contract.SearchRepository
}
