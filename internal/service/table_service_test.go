package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"workspace-be/internal/dto"
	"workspace-be/internal/entity"
	"workspace-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tableFixture struct {
	*fixture
	svc     ITableService
	tableId uuid.UUID
	name    uuid.UUID
	age     uuid.UUID
}

func newTableFixture(t *testing.T) *tableFixture {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewTableService(f.factory, f.notifier)

	table, err := svc.Create(ctx, &dto.CreateTableRequest{WorkspaceId: f.workspace(t, "W"), Name: "People"})
	require.NoError(t, err)
	name, err := svc.AddColumn(ctx, &dto.AddColumnRequest{TableId: table.Id, Name: "Name"})
	require.NoError(t, err)
	one := 1
	age, err := svc.AddColumn(ctx, &dto.AddColumnRequest{TableId: table.Id, Name: "Age", Type: "number", OrderIndex: &one})
	require.NoError(t, err)

	return &tableFixture{fixture: f, svc: svc, tableId: table.Id, name: name.Id, age: age.Id}
}

func TestTableScenarioExportsCSV(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId, Cells: dto.CellValues{
		f.name: rawJSON(t, "Ann"),
		f.age:  rawJSON(t, 30),
	}})
	require.NoError(t, err)

	doc, err := NewExportService(f.factory).Export(ctx, ExportKindTable, f.tableId, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Name,Age\nAnn,30", doc.Body)
	assert.Equal(t, "People.csv", doc.Filename)
}

func TestTableShowIsDenseAndSparse(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	first, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId, Cells: dto.CellValues{f.name: rawJSON(t, "Ann")}})
	require.NoError(t, err)
	second, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId})
	require.NoError(t, err)

	view, err := f.svc.Show(ctx, f.tableId)
	require.NoError(t, err)

	require.Len(t, view.Columns, 2)
	assert.Equal(t, "Name", view.Columns[0].Name)
	assert.Equal(t, "text", view.Columns[0].Type)
	assert.Equal(t, "Age", view.Columns[1].Name)

	require.Len(t, view.Rows, 2)
	byId := map[uuid.UUID]dto.RowResponse{}
	for _, r := range view.Rows {
		byId[r.Id] = r
	}
	require.Contains(t, byId, first.RowId)
	require.Contains(t, byId, second.RowId)

	assert.Len(t, byId[first.RowId].Cells, 1)
	assert.Equal(t, entity.StringValue("Ann"), byId[first.RowId].Cells[f.name])
	assert.NotNil(t, byId[second.RowId].Cells)
	assert.Empty(t, byId[second.RowId].Cells)
}

func TestSetCellLastWriteWins(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	row, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId})
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, f.svc.SetCell(ctx, &dto.SetCellRequest{RowId: row.RowId, ColumnId: f.name, Value: rawJSON(t, v)}))
	}

	var count int64
	require.NoError(t, f.db.Table("table_cells").Where("row_id = ?", row.RowId).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	view, err := f.svc.Show(ctx, f.tableId)
	require.NoError(t, err)
	assert.Equal(t, entity.StringValue("c"), view.Rows[0].Cells[f.name])
}

func TestSetCellConcurrentWritersLeaveOneCell(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	row, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, f.svc.SetCell(ctx, &dto.SetCellRequest{RowId: row.RowId, ColumnId: f.age, Value: rawJSON(t, n)}))
		}(i)
	}
	wg.Wait()

	var count int64
	require.NoError(t, f.db.Table("table_cells").Where("row_id = ?", row.RowId).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetCellNullIsDistinctFromMissing(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	row, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId})
	require.NoError(t, err)
	require.NoError(t, f.svc.SetCell(ctx, &dto.SetCellRequest{RowId: row.RowId, ColumnId: f.age, Value: json.RawMessage("null")}))

	view, err := f.svc.Show(ctx, f.tableId)
	require.NoError(t, err)
	cells := view.Rows[0].Cells
	require.Contains(t, cells, f.age)
	assert.Equal(t, entity.NullValue(), cells[f.age])
	assert.NotContains(t, cells, f.name)
}

func TestSetCellRequiresValue(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	row, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId})
	require.NoError(t, err)

	err = f.svc.SetCell(ctx, &dto.SetCellRequest{RowId: row.RowId, ColumnId: f.age})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	view, err := f.svc.Show(ctx, f.tableId)
	require.NoError(t, err)
	assert.Empty(t, view.Rows[0].Cells)
}

func TestSetCellRejectsColumnOfAnotherTable(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	other, err := f.svc.Create(ctx, &dto.CreateTableRequest{WorkspaceId: f.workspace(t, "X"), Name: "Other"})
	require.NoError(t, err)
	foreign, err := f.svc.AddColumn(ctx, &dto.AddColumnRequest{TableId: other.Id, Name: "F"})
	require.NoError(t, err)
	row, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId})
	require.NoError(t, err)

	err = f.svc.SetCell(ctx, &dto.SetCellRequest{RowId: row.RowId, ColumnId: foreign.Id, Value: rawJSON(t, "x")})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	err = f.svc.SetCell(ctx, &dto.SetCellRequest{RowId: uuid.New(), ColumnId: f.name, Value: rawJSON(t, "x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddRowRollsBackOnBadCell(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId, Cells: dto.CellValues{
		f.name:     rawJSON(t, "Ann"),
		uuid.New(): rawJSON(t, "ghost"),
	}})
	require.Error(t, err)

	view, err := f.svc.Show(ctx, f.tableId)
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
}

func TestSetRowCellsRequiresCells(t *testing.T) {
	f := newTableFixture(t)
	row, err := f.svc.AddRow(context.Background(), &dto.AddRowRequest{TableId: f.tableId})
	require.NoError(t, err)

	err = f.svc.SetRowCells(context.Background(), &dto.SetRowCellsRequest{RowId: row.RowId})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	err = f.svc.SetRowCells(context.Background(), &dto.SetRowCellsRequest{RowId: row.RowId, Cells: dto.CellValues{
		f.name: rawJSON(t, "Bo"),
		f.age:  rawJSON(t, true),
	}})
	require.NoError(t, err)

	rows, err := f.svc.ListRows(context.Background(), f.tableId, 0)
	require.NoError(t, err)
	require.Len(t, rows.Rows, 1)
	assert.Equal(t, entity.BoolValue(true), rows.Rows[0].Cells[f.age])
}

func TestShowTableUsesConstantNumberOfQueries(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	var queries int
	require.NoError(t, f.db.Callback().Query().After("gorm:query").Register("test:count_queries", func(*gorm.DB) {
		queries++
	}))

	measure := func() int {
		queries = 0
		_, err := f.svc.Show(ctx, f.tableId)
		require.NoError(t, err)
		return queries
	}

	addRows := func(n int) {
		for i := 0; i < n; i++ {
			_, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId, Cells: dto.CellValues{
				f.name: rawJSON(t, "x"),
				f.age:  rawJSON(t, i),
			}})
			require.NoError(t, err)
		}
	}

	addRows(2)
	small := measure()
	addRows(25)
	large := measure()

	assert.Equal(t, small, large)
	assert.LessOrEqual(t, large, 4)
}

func TestListRowsNewestFirstWithLimit(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId, Cells: dto.CellValues{f.age: rawJSON(t, i)}})
		require.NoError(t, err)
	}

	rows, err := f.svc.ListRows(ctx, f.tableId, 2)
	require.NoError(t, err)
	require.Len(t, rows.Rows, 2)
	assert.False(t, rows.Rows[0].CreatedAt.Before(rows.Rows[1].CreatedAt))

	empty, err := f.svc.ListRows(ctx, uuid.New(), 10)
	require.NoError(t, err)
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)
}

func TestDeleteTableRemovesEverything(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddRow(ctx, &dto.AddRowRequest{TableId: f.tableId, Cells: dto.CellValues{f.name: rawJSON(t, "Ann")}})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, f.tableId))

	for _, table := range []string{"tables", "table_columns", "table_rows", "table_cells"} {
		var count int64
		require.NoError(t, f.db.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}

	_, err = f.svc.Show(ctx, f.tableId)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, f.tableId), apperror.ErrNotFound)
}
