package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByTableID applies to columns and rows.
type ByTableID struct {
	TableID uuid.UUID
}

func (s ByTableID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("table_id = ?", s.TableID)
}

// OfWorkspaceTables applies to columns and rows of every table in a workspace.
type OfWorkspaceTables struct {
	WorkspaceID uuid.UUID
}

func (s OfWorkspaceTables) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("table_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("tables").Select("id").Where("workspace_id = ?", s.WorkspaceID))
}

type CellsOfRow struct {
	RowID uuid.UUID
}

func (s CellsOfRow) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("row_id = ?", s.RowID)
}

type CellsOfColumn struct {
	ColumnID uuid.UUID
}

func (s CellsOfColumn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("column_id = ?", s.ColumnID)
}

// CellsOfTable selects every cell of a table in one statement by joining on
// row identity through a subquery.
type CellsOfTable struct {
	TableID uuid.UUID
}

func (s CellsOfTable) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("row_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("table_rows").Select("id").Where("table_id = ?", s.TableID))
}

type CellsOfRows struct {
	RowIDs []uuid.UUID
}

func (s CellsOfRows) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("row_id IN ?", s.RowIDs)
}

type CellsOfWorkspace struct {
	WorkspaceID uuid.UUID
}

func (s CellsOfWorkspace) Apply(db *gorm.DB) *gorm.DB {
	rows := db.Session(&gorm.Session{NewDB: true}).
		Table("table_rows").
		Select("table_rows.id").
		Joins("JOIN tables ON tables.id = table_rows.table_id").
		Where("tables.workspace_id = ?", s.WorkspaceID)
	return db.Where("row_id IN (?)", rows)
}
