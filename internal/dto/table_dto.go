package dto

import (
	"encoding/json"
	"time"

	"workspace-be/internal/entity"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	WorkspaceId uuid.UUID `json:"workspaceId" validate:"required"`
	Name        string    `json:"name" validate:"required,max=255"`
}

type TableResponse struct {
	Id          uuid.UUID `json:"id"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListTablesResponse struct {
	Tables []TableResponse `json:"tables"`
}

type AddColumnRequest struct {
	TableId    uuid.UUID `json:"-"`
	Name       string    `json:"name" validate:"required,max=255"`
	Type       string    `json:"type" validate:"max=50"`
	OrderIndex *int      `json:"orderIndex"`
}

type ColumnResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	OrderIndex int       `json:"orderIndex"`
}

// CellValues maps column ids to raw JSON values.
type CellValues map[uuid.UUID]json.RawMessage

type AddRowRequest struct {
	TableId uuid.UUID  `json:"-"`
	Cells   CellValues `json:"cells"`
}

type AddRowResponse struct {
	RowId uuid.UUID `json:"rowId"`
}

type SetCellRequest struct {
	RowId    uuid.UUID       `json:"-"`
	ColumnId uuid.UUID       `json:"-"`
	Value    json.RawMessage `json:"value"`
}

type SetRowCellsRequest struct {
	RowId uuid.UUID  `json:"-"`
	Cells CellValues `json:"cells" validate:"required"`
}

type RowResponse struct {
	Id        uuid.UUID                      `json:"id"`
	CreatedAt time.Time                      `json:"createdAt"`
	Cells     map[uuid.UUID]entity.CellValue `json:"cells"`
}

type TableViewResponse struct {
	Table   TableResponse    `json:"table"`
	Columns []ColumnResponse `json:"columns"`
	Rows    []RowResponse    `json:"rows"`
}

type ListRowsResponse struct {
	Rows []RowResponse `json:"rows"`
}

func NewTableResponse(t *entity.Table) TableResponse {
	return TableResponse{Id: t.Id, WorkspaceId: t.WorkspaceId, Name: t.Name, CreatedAt: t.CreatedAt}
}

func NewRowResponses(rows []entity.TableRowView) []RowResponse {
	out := make([]RowResponse, len(rows))
	for i, r := range rows {
		cells := r.Cells
		if cells == nil {
			cells = map[uuid.UUID]entity.CellValue{}
		}
		out[i] = RowResponse{Id: r.Id, CreatedAt: r.CreatedAt, Cells: cells}
	}
	return out
}

func NewTableViewResponse(v *entity.TableView) *TableViewResponse {
	columns := make([]ColumnResponse, len(v.Columns))
	for i, c := range v.Columns {
		columns[i] = ColumnResponse{Id: c.Id, Name: c.Name, Type: c.Type, OrderIndex: c.OrderIndex}
	}
	return &TableViewResponse{
		Table:   NewTableResponse(&v.Table),
		Columns: columns,
		Rows:    NewRowResponses(v.Rows),
	}
}
