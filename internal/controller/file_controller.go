package controller

import (
	"strings"

	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/serverutils"
	"workspace-be/internal/service"
	"workspace-be/pkg/export"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IFileService
	owners  service.IOwnershipService
}

func NewFileController(service service.IFileService, owners service.IOwnershipService) IFileController {
	return &fileController{service: service, owners: owners}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/files")
	h.Get("", c.List)
	h.Post("", c.Upload)
	h.Get("/:id", c.Show)
	h.Get("/:id/download", c.Download)
	h.Delete("/:id", c.Delete)
}

// Upload takes a multipart "file" part. The workspace comes from the
// workspaceId query parameter or form field.
func (c *fileController) Upload(ctx *fiber.Ctx) error {
	rawWorkspace := strings.TrimSpace(ctx.Query("workspaceId"))
	if rawWorkspace == "" {
		rawWorkspace = strings.TrimSpace(ctx.FormValue("workspaceId"))
	}
	if rawWorkspace == "" {
		return apperror.InvalidArgument("workspaceId required (query or form field)")
	}
	workspaceId, err := uuid.Parse(rawWorkspace)
	if err != nil {
		return apperror.InvalidArgument("workspaceId is not a valid id")
	}
	if err := serverutils.AuthorizeWorkspace(ctx, workspaceId); err != nil {
		return err
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return apperror.InvalidArgument("file is required")
	}
	body, err := header.Open()
	if err != nil {
		return apperror.InvalidArgument("cannot read upload: %v", err)
	}
	defer body.Close()

	res, err := c.service.Upload(ctx.UserContext(), &dto.UploadFileRequest{
		WorkspaceId: workspaceId,
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Body:        body,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload file", res))
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	scope, err := listScope(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), scope)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all file", res))
}

func (c *fileController) Show(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerFile, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get file", res))
}

func (c *fileController) Download(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerFile, "id")
	if err != nil {
		return err
	}

	file, err := c.service.Download(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, export.ContentDisposition(file.Filename))
	// the stream is closed once fasthttp has written it
	return ctx.SendStream(file.Body, int(file.Size))
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerFile, "id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(ok())
}
