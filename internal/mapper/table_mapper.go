package mapper

import (
	"encoding/json"

	"workspace-be/internal/entity"
	"workspace-be/internal/model"

	"gorm.io/datatypes"
)

type TableMapper struct{}

func NewTableMapper() *TableMapper {
	return &TableMapper{}
}

func (m *TableMapper) ToEntity(t *model.Table) *entity.Table {
	if t == nil {
		return nil
	}
	return &entity.Table{
		Id:          t.Id,
		WorkspaceId: t.WorkspaceId,
		Name:        t.Name,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *TableMapper) ToModel(t *entity.Table) *model.Table {
	if t == nil {
		return nil
	}
	return &model.Table{
		Id:          t.Id,
		WorkspaceId: t.WorkspaceId,
		Name:        t.Name,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *TableMapper) ToEntities(tables []*model.Table) []*entity.Table {
	entities := make([]*entity.Table, len(tables))
	for i, t := range tables {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TableMapper) ColumnToEntity(c *model.TableColumn) *entity.Column {
	if c == nil {
		return nil
	}
	return &entity.Column{
		Id:         c.Id,
		TableId:    c.TableId,
		Name:       c.Name,
		Type:       c.Type,
		OrderIndex: c.OrderIndex,
	}
}

func (m *TableMapper) ColumnToModel(c *entity.Column) *model.TableColumn {
	if c == nil {
		return nil
	}
	return &model.TableColumn{
		Id:         c.Id,
		TableId:    c.TableId,
		Name:       c.Name,
		Type:       c.Type,
		OrderIndex: c.OrderIndex,
	}
}

func (m *TableMapper) ColumnsToEntities(columns []*model.TableColumn) []*entity.Column {
	entities := make([]*entity.Column, len(columns))
	for i, c := range columns {
		entities[i] = m.ColumnToEntity(c)
	}
	return entities
}

func (m *TableMapper) RowToEntity(r *model.TableRow) *entity.Row {
	if r == nil {
		return nil
	}
	return &entity.Row{Id: r.Id, TableId: r.TableId, CreatedAt: r.CreatedAt}
}

func (m *TableMapper) RowsToEntities(rows []*model.TableRow) []*entity.Row {
	entities := make([]*entity.Row, len(rows))
	for i, r := range rows {
		entities[i] = m.RowToEntity(r)
	}
	return entities
}

// CellToEntity decodes the stored JSON. A stored value that no longer parses
// reads as null rather than failing the whole table read.
func (m *TableMapper) CellToEntity(c *model.TableCell) *entity.Cell {
	if c == nil {
		return nil
	}
	value, err := entity.ParseCellValue(json.RawMessage(c.Value), "")
	if err != nil {
		value = entity.NullValue()
	}
	return &entity.Cell{
		RowId:     c.RowId,
		ColumnId:  c.ColumnId,
		Value:     value,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *TableMapper) CellToModel(c *entity.Cell) (*model.TableCell, error) {
	raw, err := json.Marshal(c.Value)
	if err != nil {
		return nil, err
	}
	return &model.TableCell{
		RowId:     c.RowId,
		ColumnId:  c.ColumnId,
		Value:     datatypes.JSON(raw),
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func (m *TableMapper) CellsToEntities(cells []*model.TableCell) []*entity.Cell {
	entities := make([]*entity.Cell, len(cells))
	for i, c := range cells {
		entities[i] = m.CellToEntity(c)
	}
	return entities
}
