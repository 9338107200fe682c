package unitofwork

import (
	"context"
	"fmt"

	"workspace-be/internal/repository/contract"
	"workspace-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // set between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is safe to defer: after a Commit it is a no-op.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) WorkspaceRepository() contract.WorkspaceRepository {
	return implementation.NewWorkspaceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TableRepository() contract.TableRepository {
	return implementation.NewTableRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TableColumnRepository() contract.TableColumnRepository {
	return implementation.NewTableColumnRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TableRowRepository() contract.TableRowRepository {
	return implementation.NewTableRowRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TableCellRepository() contract.TableCellRepository {
	return implementation.NewTableCellRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocsPageRepository() contract.DocsPageRepository {
	return implementation.NewDocsPageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocsBlockRepository() contract.DocsBlockRepository {
	return implementation.NewDocsBlockRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CalendarRepository() contract.CalendarRepository {
	return implementation.NewCalendarRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EventRepository() contract.EventRepository {
	return implementation.NewEventRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FileRepository() contract.FileRepository {
	return implementation.NewFileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SearchRepository() contract.SearchRepository {
	return implementation.NewSearchRepository(u.getDB())
}
