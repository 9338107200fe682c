package entity

import (
	"time"

	"github.com/google/uuid"
)

// Declared column types. They label a column for clients and guide value
// classification; they are never enforced against stored values.
const (
	ColumnTypeText     = "text"
	ColumnTypeNumber   = "number"
	ColumnTypeBoolean  = "boolean"
	ColumnTypeDate     = "date"
	ColumnTypeSelect   = "select"
	ColumnTypeURL      = "url"
	ColumnTypeCheckbox = "checkbox"
)

type Table struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Name        string
	CreatedAt   time.Time
}

type Column struct {
	Id         uuid.UUID
	TableId    uuid.UUID
	Name       string
	Type       string
	OrderIndex int
}

type Row struct {
	Id        uuid.UUID
	TableId   uuid.UUID
	CreatedAt time.Time
}

// Cell is keyed by (RowId, ColumnId). A missing cell means "no value", which is
// distinct from a cell holding an explicit null.
type Cell struct {
	RowId     uuid.UUID
	ColumnId  uuid.UUID
	Value     CellValue
	UpdatedAt time.Time
}

type TableRowView struct {
	Id        uuid.UUID
	CreatedAt time.Time
	Cells     map[uuid.UUID]CellValue
}

// TableView is the dense view of a table: columns by order index, rows by
// creation order, each row carrying only the cells that exist.
type TableView struct {
	Table   Table
	Columns []Column
	Rows    []TableRowView
}
