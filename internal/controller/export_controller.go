package controller

import (
	"strings"

	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/service"
	"workspace-be/pkg/export"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
}

type exportController struct {
	service service.IExportService
	owners  service.IOwnershipService
}

func NewExportController(service service.IExportService, owners service.IOwnershipService) IExportController {
	return &exportController{service: service, owners: owners}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	r.Get("/tables/:id/export/csv", c.fixed(service.ExportKindTable, service.ExportFormatCSV))
	r.Get("/docs/pages/:id/export/markdown", c.fixed(service.ExportKindPage, service.ExportFormatMarkdown))
	r.Get("/calendars/:id/export/ics", c.fixed(service.ExportKindCalendar, service.ExportFormatICS))
	r.Get("/export/:kind/:id/:format", c.Export)
}

func (c *exportController) fixed(kind, format string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return c.render(ctx, kind, format)
	}
}

func (c *exportController) Export(ctx *fiber.Ctx) error {
	return c.render(ctx, ctx.Params("kind"), ctx.Params("format"))
}

func (c *exportController) render(ctx *fiber.Ctx, kind, format string) error {
	kind = strings.ToLower(kind)
	switch kind {
	case service.ExportKindTable, service.ExportKindPage, service.ExportKindCalendar:
	default:
		return apperror.UnsupportedFormat("cannot export %q", kind)
	}
	id, err := ownedParam(ctx, c.owners, service.OwnerKind(kind), "id")
	if err != nil {
		return err
	}

	doc, err := c.service.Export(ctx.UserContext(), kind, id, format)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, doc.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, export.ContentDisposition(doc.Filename))
	return ctx.SendString(doc.Body)
}
