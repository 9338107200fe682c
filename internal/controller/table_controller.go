package controller

import (
	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/serverutils"
	"workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITableController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddColumn(ctx *fiber.Ctx) error
	AddRow(ctx *fiber.Ctx) error
	ListRows(ctx *fiber.Ctx) error
	DeleteRow(ctx *fiber.Ctx) error
	SetCell(ctx *fiber.Ctx) error
	SetRowCells(ctx *fiber.Ctx) error
}

type tableController struct {
	service service.ITableService
	owners  service.IOwnershipService
}

func NewTableController(service service.ITableService, owners service.IOwnershipService) ITableController {
	return &tableController{service: service, owners: owners}
}

func (c *tableController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tables")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/columns", c.AddColumn)
	h.Post("/:id/rows", c.AddRow)
	h.Get("/:id/rows", c.ListRows)

	rows := r.Group("/rows")
	rows.Delete("/:rowId", c.DeleteRow)
	rows.Put("/:rowId/cells", c.SetRowCells)
	rows.Put("/:rowId/cells/:columnId", c.SetCell)
}

func (c *tableController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTableRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if err := serverutils.AuthorizeWorkspace(ctx, req.WorkspaceId); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create table", res))
}

func (c *tableController) List(ctx *fiber.Ctx) error {
	workspaceId, err := requiredScope(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), workspaceId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all table", res))
}

func (c *tableController) Show(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerTable, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get table", res))
}

func (c *tableController) Delete(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerTable, "id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(ok())
}

func (c *tableController) AddColumn(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerTable, "id")
	if err != nil {
		return err
	}

	var req dto.AddColumnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.TableId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddColumn(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add column", res))
}

func (c *tableController) AddRow(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerTable, "id")
	if err != nil {
		return err
	}

	var req dto.AddRowRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return apperror.InvalidArgument("invalid body: %v", err)
		}
	}
	req.TableId = id

	res, err := c.service.AddRow(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add row", res))
}

func (c *tableController) ListRows(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerTable, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ListRows(ctx.UserContext(), id, ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get rows", res))
}

func (c *tableController) DeleteRow(ctx *fiber.Ctx) error {
	rowId, err := ownedParam(ctx, c.owners, service.OwnerRow, "rowId")
	if err != nil {
		return err
	}
	if err := c.service.DeleteRow(ctx.UserContext(), rowId); err != nil {
		return err
	}
	return ctx.JSON(ok())
}

func (c *tableController) SetCell(ctx *fiber.Ctx) error {
	rowId, err := ownedParam(ctx, c.owners, service.OwnerRow, "rowId")
	if err != nil {
		return err
	}
	columnId, err := serverutils.ParamUUID(ctx, "columnId")
	if err != nil {
		return err
	}

	var req dto.SetCellRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.RowId, req.ColumnId = rowId, columnId

	if err := c.service.SetCell(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(ok())
}

func (c *tableController) SetRowCells(ctx *fiber.Ctx) error {
	rowId, err := ownedParam(ctx, c.owners, service.OwnerRow, "rowId")
	if err != nil {
		return err
	}

	var req dto.SetRowCellsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.RowId = rowId

	if err := c.service.SetRowCells(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(ok())
}
