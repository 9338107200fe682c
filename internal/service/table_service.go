package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"workspace-be/internal/dto"
	"workspace-be/internal/entity"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/scope"
	"workspace-be/internal/repository/specification"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/events"

	"github.com/google/uuid"
)

const defaultRowLimit = 50

type ITableService interface {
	Create(ctx context.Context, req *dto.CreateTableRequest) (*dto.TableResponse, error)
	List(ctx context.Context, workspaceId uuid.UUID) (*dto.ListTablesResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TableViewResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddColumn(ctx context.Context, req *dto.AddColumnRequest) (*dto.IdResponse, error)
	AddRow(ctx context.Context, req *dto.AddRowRequest) (*dto.AddRowResponse, error)
	ListRows(ctx context.Context, tableId uuid.UUID, limit int) (*dto.ListRowsResponse, error)
	DeleteRow(ctx context.Context, rowId uuid.UUID) error
	SetCell(ctx context.Context, req *dto.SetCellRequest) error
	SetRowCells(ctx context.Context, req *dto.SetRowCellsRequest) error
}

type tableService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   IChangeNotifier
}

func NewTableService(uowFactory unitofwork.RepositoryFactory, notifier IChangeNotifier) ITableService {
	return &tableService{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (c *tableService) Create(ctx context.Context, req *dto.CreateTableRequest) (*dto.TableResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireWorkspace(ctx, uow, req.WorkspaceId); err != nil {
		return nil, err
	}

	table := entity.Table{WorkspaceId: req.WorkspaceId, Name: req.Name}
	if err := uow.TableRepository().Create(ctx, &table); err != nil {
		return nil, err
	}

	c.changed(ctx, &table)
	res := dto.NewTableResponse(&table)
	return &res, nil
}

func (c *tableService) List(ctx context.Context, workspaceId uuid.UUID) (*dto.ListTablesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	tables, err := uow.TableRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.Scope(scope.OrderByCreatedDesc),
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListTablesResponse{Tables: make([]dto.TableResponse, 0, len(tables))}
	for _, t := range tables {
		res.Tables = append(res.Tables, dto.NewTableResponse(t))
	}
	return res, nil
}

func (c *tableService) Show(ctx context.Context, id uuid.UUID) (*dto.TableViewResponse, error) {
	view, err := loadTable(ctx, c.uowFactory.NewUnitOfWork(ctx), id)
	if err != nil {
		return nil, err
	}
	return dto.NewTableViewResponse(view), nil
}

// loadTable assembles the dense view with a fixed number of reads: the table,
// its columns, its rows and every cell of those rows. Cells are grouped in
// memory.
func loadTable(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.TableView, error) {
	table, err := requireTable(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	columns, err := uow.TableColumnRepository().FindAll(ctx,
		specification.ByTableID{TableID: id},
		specification.Scope(scope.OrderByIndexAsc),
		specification.Scope(scope.OrderByCreatedAsc),
	)
	if err != nil {
		return nil, err
	}

	rows, err := uow.TableRowRepository().FindAll(ctx,
		specification.ByTableID{TableID: id},
		specification.Scope(scope.OrderByCreatedAsc),
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	cells, err := uow.TableCellRepository().FindAll(ctx, specification.CellsOfTable{TableID: id})
	if err != nil {
		return nil, err
	}

	view := &entity.TableView{
		Table:   *table,
		Columns: make([]entity.Column, 0, len(columns)),
		Rows:    assembleRows(columns, rows, cells),
	}
	for _, col := range columns {
		view.Columns = append(view.Columns, *col)
	}
	return view, nil
}

func assembleRows(columns []*entity.Column, rows []*entity.Row, cells []*entity.Cell) []entity.TableRowView {
	types := make(map[uuid.UUID]string, len(columns))
	for _, col := range columns {
		types[col.Id] = col.Type
	}

	byRow := make(map[uuid.UUID]map[uuid.UUID]entity.CellValue, len(rows))
	for _, cell := range cells {
		values, ok := byRow[cell.RowId]
		if !ok {
			values = make(map[uuid.UUID]entity.CellValue)
			byRow[cell.RowId] = values
		}
		values[cell.ColumnId] = cell.Value.Classify(types[cell.ColumnId])
	}

	views := make([]entity.TableRowView, 0, len(rows))
	for _, row := range rows {
		values := byRow[row.Id]
		if values == nil {
			values = make(map[uuid.UUID]entity.CellValue)
		}
		views = append(views, entity.TableRowView{Id: row.Id, CreatedAt: row.CreatedAt, Cells: values})
	}
	return views
}

func (c *tableService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	table, err := requireTable(ctx, uow, id)
	if err != nil {
		return err
	}
	if _, err := uow.TableCellRepository().DeleteAll(ctx, specification.CellsOfTable{TableID: id}); err != nil {
		return err
	}
	if _, err := uow.TableRowRepository().DeleteAll(ctx, specification.ByTableID{TableID: id}); err != nil {
		return err
	}
	if _, err := uow.TableColumnRepository().DeleteAll(ctx, specification.ByTableID{TableID: id}); err != nil {
		return err
	}
	if err := uow.TableRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.StorageFailure("commit table delete", err)
	}

	c.notifier.Notify(ctx, events.TableDeleted, map[string]interface{}{
		"table_id":     id.String(),
		"workspace_id": table.WorkspaceId.String(),
	})
	return nil
}

func (c *tableService) AddColumn(ctx context.Context, req *dto.AddColumnRequest) (*dto.IdResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	table, err := requireTable(ctx, uow, req.TableId)
	if err != nil {
		return nil, err
	}

	column := entity.Column{
		TableId: req.TableId,
		Name:    req.Name,
		Type:    strings.TrimSpace(req.Type),
	}
	if column.Type == "" {
		column.Type = entity.ColumnTypeText
	}
	if req.OrderIndex != nil {
		column.OrderIndex = *req.OrderIndex
	}
	if err := uow.TableColumnRepository().Create(ctx, &column); err != nil {
		return nil, err
	}

	c.changed(ctx, table)
	return &dto.IdResponse{Id: column.Id}, nil
}

// AddRow creates the row and its initial cells, if any, in one transaction.
func (c *tableService) AddRow(ctx context.Context, req *dto.AddRowRequest) (*dto.AddRowResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	table, err := requireTable(ctx, uow, req.TableId)
	if err != nil {
		return nil, err
	}

	row := entity.Row{TableId: req.TableId}
	if err := uow.TableRowRepository().Create(ctx, &row); err != nil {
		return nil, err
	}
	if err := writeCells(ctx, uow, &row, req.Cells); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.StorageFailure("commit row", err)
	}

	c.changed(ctx, table)
	return &dto.AddRowResponse{RowId: row.Id}, nil
}

// ListRows returns the newest rows first, with their cells.
func (c *tableService) ListRows(ctx context.Context, tableId uuid.UUID, limit int) (*dto.ListRowsResponse, error) {
	if limit <= 0 {
		limit = defaultRowLimit
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.TableRowRepository().FindAll(ctx,
		specification.ByTableID{TableID: tableId},
		specification.Scope(scope.OrderByCreatedDesc),
		specification.OrderBy{Field: "id", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &dto.ListRowsResponse{Rows: []dto.RowResponse{}}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.Id
	}
	cells, err := uow.TableCellRepository().FindAll(ctx, specification.CellsOfRows{RowIDs: ids})
	if err != nil {
		return nil, err
	}
	columns, err := uow.TableColumnRepository().FindAll(ctx, specification.ByTableID{TableID: tableId})
	if err != nil {
		return nil, err
	}

	return &dto.ListRowsResponse{Rows: dto.NewRowResponses(assembleRows(columns, rows, cells))}, nil
}

func (c *tableService) DeleteRow(ctx context.Context, rowId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	row, err := requireRow(ctx, uow, rowId)
	if err != nil {
		return err
	}
	if _, err := uow.TableCellRepository().DeleteAll(ctx, specification.CellsOfRow{RowID: rowId}); err != nil {
		return err
	}
	if err := uow.TableRowRepository().Delete(ctx, rowId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.StorageFailure("commit row delete", err)
	}

	c.notifier.Notify(ctx, events.TableChanged, map[string]interface{}{"table_id": row.TableId.String()})
	return nil
}

// SetCell is a single upsert; concurrent writers to the same cell race and the
// last committed write wins.
// SetCell requires an explicit value; JSON null stores a null cell.
func (c *tableService) SetCell(ctx context.Context, req *dto.SetCellRequest) error {
	if len(req.Value) == 0 {
		return apperror.InvalidArgument("value is required")
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)
	row, err := requireRow(ctx, uow, req.RowId)
	if err != nil {
		return err
	}
	column, err := requireColumn(ctx, uow, row, req.ColumnId)
	if err != nil {
		return err
	}
	if err := upsertCell(ctx, uow, row, column, req.Value); err != nil {
		return err
	}

	c.notifier.Notify(ctx, events.TableChanged, map[string]interface{}{"table_id": row.TableId.String()})
	return nil
}

// SetRowCells writes every given cell of a row in one transaction.
func (c *tableService) SetRowCells(ctx context.Context, req *dto.SetRowCellsRequest) error {
	if len(req.Cells) == 0 {
		return apperror.InvalidArgument("cells is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	row, err := requireRow(ctx, uow, req.RowId)
	if err != nil {
		return err
	}
	if err := writeCells(ctx, uow, row, req.Cells); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.StorageFailure("commit cells", err)
	}

	c.notifier.Notify(ctx, events.TableChanged, map[string]interface{}{"table_id": row.TableId.String()})
	return nil
}

func (c *tableService) changed(ctx context.Context, table *entity.Table) {
	c.notifier.Notify(ctx, events.TableChanged, map[string]interface{}{
		"table_id":     table.Id.String(),
		"workspace_id": table.WorkspaceId.String(),
	})
}

// writeCells upserts cells in column id order so concurrent row writes take
// row locks in the same order.
func writeCells(ctx context.Context, uow unitofwork.UnitOfWork, row *entity.Row, cells dto.CellValues) error {
	if len(cells) == 0 {
		return nil
	}

	columns, err := uow.TableColumnRepository().FindAll(ctx, specification.ByTableID{TableID: row.TableId})
	if err != nil {
		return err
	}
	byId := make(map[uuid.UUID]*entity.Column, len(columns))
	for _, col := range columns {
		byId[col.Id] = col
	}

	ids := make([]uuid.UUID, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		column, ok := byId[id]
		if !ok {
			if column, err = requireColumn(ctx, uow, row, id); err != nil {
				return err
			}
		}
		if err := upsertCell(ctx, uow, row, column, cells[id]); err != nil {
			return err
		}
	}
	return nil
}

func upsertCell(ctx context.Context, uow unitofwork.UnitOfWork, row *entity.Row, column *entity.Column, raw json.RawMessage) error {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	value, err := entity.ParseCellValue(raw, column.Type)
	if err != nil {
		return apperror.InvalidArgument("cell %s: %v", column.Id, err)
	}
	return uow.TableCellRepository().Upsert(ctx, &entity.Cell{
		RowId:    row.Id,
		ColumnId: column.Id,
		Value:    value,
	})
}

func requireTable(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Table, error) {
	table, err := uow.TableRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NotFound("table %s not found", id)
	}
	return table, nil
}

func requireRow(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Row, error) {
	row, err := uow.TableRowRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.NotFound("row %s not found", id)
	}
	return row, nil
}

// requireColumn also checks that the column belongs to the row's table.
func requireColumn(ctx context.Context, uow unitofwork.UnitOfWork, row *entity.Row, id uuid.UUID) (*entity.Column, error) {
	column, err := uow.TableColumnRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperror.NotFound("column %s not found", id)
	}
	if column.TableId != row.TableId {
		return nil, apperror.InvalidArgument("column %s does not belong to the table of row %s", id, row.Id)
	}
	return column, nil
}
