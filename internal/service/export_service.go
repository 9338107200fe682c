package service

import (
	"context"
	"strings"

	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/export"

	"github.com/google/uuid"
)

// Entity kinds that can be exported, and their formats.
const (
	ExportKindTable    = "table"
	ExportKindPage     = "page"
	ExportKindCalendar = "calendar"

	ExportFormatCSV      = "csv"
	ExportFormatMarkdown = "markdown"
	ExportFormatICS      = "ics"
)

type IExportService interface {
	Export(ctx context.Context, kind string, id uuid.UUID, format string) (*export.Document, error)
}

type exportService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewExportService(uowFactory unitofwork.RepositoryFactory) IExportService {
	return &exportService{uowFactory: uowFactory}
}

// Export reads one entity graph and renders it. Unknown kind and format
// combinations fail before anything is read.
func (c *exportService) Export(ctx context.Context, kind string, id uuid.UUID, format string) (*export.Document, error) {
	kind, format = strings.ToLower(kind), normalizeFormat(format)
	uow := c.uowFactory.NewUnitOfWork(ctx)

	switch {
	case kind == ExportKindTable && format == ExportFormatCSV:
		view, err := loadTable(ctx, uow, id)
		if err != nil {
			return nil, err
		}
		doc := export.TableCSV(view)
		return &doc, nil
	case kind == ExportKindPage && format == ExportFormatMarkdown:
		view, err := loadPage(ctx, uow, id)
		if err != nil {
			return nil, err
		}
		doc := export.PageMarkdown(view)
		return &doc, nil
	case kind == ExportKindCalendar && format == ExportFormatICS:
		view, err := loadCalendar(ctx, uow, id)
		if err != nil {
			return nil, err
		}
		doc := export.CalendarICS(view)
		return &doc, nil
	}
	return nil, apperror.UnsupportedFormat("cannot export %s as %s", kind, format)
}

func normalizeFormat(format string) string {
	switch f := strings.ToLower(format); f {
	case "md":
		return ExportFormatMarkdown
	case "ical", "icalendar":
		return ExportFormatICS
	default:
		return f
	}
}
