package controller

import (
	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/serverutils"
	"workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service service.IWorkspaceService
}

func NewWorkspaceController(service service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{service: service}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspaces")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func requireService(ctx *fiber.Ctx) error {
	identity, err := serverutils.IdentityOf(ctx)
	if err != nil {
		return err
	}
	if !identity.Service {
		return apperror.Unauthorized("a service token is required")
	}
	return nil
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	if err := requireService(ctx); err != nil {
		return err
	}

	var req dto.CreateWorkspaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create workspace", res))
}

func (c *workspaceController) List(ctx *fiber.Ctx) error {
	identity, err := serverutils.IdentityOf(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), identity.Scope())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all workspace", res))
}

func (c *workspaceController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	if err := serverutils.AuthorizeWorkspace(ctx, id); err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get workspace", res))
}

func (c *workspaceController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	if err := serverutils.AuthorizeWorkspace(ctx, id); err != nil {
		return err
	}

	var req dto.UpdateWorkspaceRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Success update workspace", res))
}

func (c *workspaceController) Delete(ctx *fiber.Ctx) error {
	if err := requireService(ctx); err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(ok())
}
