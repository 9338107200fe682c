package controller

import (
	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/serverutils"
	"workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocsController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddBlock(ctx *fiber.Ctx) error
	UpdateBlock(ctx *fiber.Ctx) error
	DeleteBlock(ctx *fiber.Ctx) error
}

type docsController struct {
	service service.IPageService
	owners  service.IOwnershipService
}

func NewDocsController(service service.IPageService, owners service.IOwnershipService) IDocsController {
	return &docsController{service: service, owners: owners}
}

func (c *docsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/docs/pages")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/blocks", c.AddBlock)
	h.Put("/:pageId/blocks/:blockId", c.UpdateBlock)
	h.Delete("/:pageId/blocks/:blockId", c.DeleteBlock)
}

func (c *docsController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePageRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Success create page", res))
}

func (c *docsController) List(ctx *fiber.Ctx) error {
	scope, err := listScope(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), scope)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all page", res))
}

func (c *docsController) Show(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerPage, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get page", res))
}

func (c *docsController) Update(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerPage, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update page", res))
}

func (c *docsController) Delete(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerPage, "id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(ok())
}

func (c *docsController) AddBlock(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerPage, "id")
	if err != nil {
		return err
	}

	var req dto.AddBlockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.PageId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddBlock(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add block", res))
}

func (c *docsController) UpdateBlock(ctx *fiber.Ctx) error {
	pageId, err := ownedParam(ctx, c.owners, service.OwnerPage, "pageId")
	if err != nil {
		return err
	}
	blockId, err := serverutils.ParamUUID(ctx, "blockId")
	if err != nil {
		return err
	}

	var req dto.UpdateBlockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.PageId, req.BlockId = pageId, blockId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateBlock(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update block", res))
}

func (c *docsController) DeleteBlock(ctx *fiber.Ctx) error {
	pageId, err := ownedParam(ctx, c.owners, service.OwnerPage, "pageId")
	if err != nil {
		return err
	}
	blockId, err := serverutils.ParamUUID(ctx, "blockId")
	if err != nil {
		return err
	}
	if err := c.service.DeleteBlock(ctx.UserContext(), pageId, blockId); err != nil {
		return err
	}
	return ctx.JSON(ok())
}
