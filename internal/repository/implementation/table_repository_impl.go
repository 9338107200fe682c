package implementation

import (
	"context"
	"errors"

	"workspace-be/internal/entity"
	"workspace-be/internal/mapper"
	"workspace-be/internal/model"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/contract"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TableMapper
}

func NewTableRepository(db *gorm.DB) contract.TableRepository {
	return &TableRepositoryImpl{db: db, mapper: mapper.NewTableMapper()}
}

func (r *TableRepositoryImpl) Create(ctx context.Context, table *entity.Table) error {
	m := r.mapper.ToModel(table)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create table", err)
	}
	*table = *r.mapper.ToEntity(m)
	return nil
}

func (r *TableRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Table{}, "id = ?", id)
	return deleteResult(res, "delete table", "table", id)
}

func (r *TableRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.Table{}, "delete tables", specs...)
}

func (r *TableRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Table, error) {
	var m model.Table
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find table", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TableRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Table, error) {
	var models []*model.Table
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list tables", err)
	}
	return r.mapper.ToEntities(models), nil
}

type TableColumnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TableMapper
}

func NewTableColumnRepository(db *gorm.DB) contract.TableColumnRepository {
	return &TableColumnRepositoryImpl{db: db, mapper: mapper.NewTableMapper()}
}

func (r *TableColumnRepositoryImpl) Create(ctx context.Context, column *entity.Column) error {
	m := r.mapper.ColumnToModel(column)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create column", err)
	}
	*column = *r.mapper.ColumnToEntity(m)
	return nil
}

func (r *TableColumnRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.TableColumn{}, "delete columns", specs...)
}

func (r *TableColumnRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Column, error) {
	var m model.TableColumn
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find column", err)
	}
	return r.mapper.ColumnToEntity(&m), nil
}

func (r *TableColumnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Column, error) {
	var models []*model.TableColumn
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list columns", err)
	}
	return r.mapper.ColumnsToEntities(models), nil
}

type TableRowRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TableMapper
}

func NewTableRowRepository(db *gorm.DB) contract.TableRowRepository {
	return &TableRowRepositoryImpl{db: db, mapper: mapper.NewTableMapper()}
}

func (r *TableRowRepositoryImpl) Create(ctx context.Context, row *entity.Row) error {
	m := &model.TableRow{Id: row.Id, TableId: row.TableId, CreatedAt: row.CreatedAt}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create row", err)
	}
	*row = *r.mapper.RowToEntity(m)
	return nil
}

func (r *TableRowRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.TableRow{}, "id = ?", id)
	return deleteResult(res, "delete row", "row", id)
}

func (r *TableRowRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.TableRow{}, "delete rows", specs...)
}

func (r *TableRowRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Row, error) {
	var m model.TableRow
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find row", err)
	}
	return r.mapper.RowToEntity(&m), nil
}

func (r *TableRowRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Row, error) {
	var models []*model.TableRow
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list rows", err)
	}
	return r.mapper.RowsToEntities(models), nil
}

type TableCellRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TableMapper
}

func NewTableCellRepository(db *gorm.DB) contract.TableCellRepository {
	return &TableCellRepositoryImpl{db: db, mapper: mapper.NewTableMapper()}
}

func (r *TableCellRepositoryImpl) Upsert(ctx context.Context, cell *entity.Cell) error {
	m, err := r.mapper.CellToModel(cell)
	if err != nil {
		return apperror.InvalidArgument("cell value: %v", err)
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "row_id"}, {Name: "column_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return apperror.StorageFailure("upsert cell", err)
	}
	cell.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TableCellRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.TableCell{}, "delete cells", specs...)
}

func (r *TableCellRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cell, error) {
	var models []*model.TableCell
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list cells", err)
	}
	return r.mapper.CellsToEntities(models), nil
}
