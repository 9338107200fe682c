package controller

import (
	"time"

	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/serverutils"
	"workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICalendarController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddEvent(ctx *fiber.Ctx) error
	ListEvents(ctx *fiber.Ctx) error
	UpdateEvent(ctx *fiber.Ctx) error
	DeleteEvent(ctx *fiber.Ctx) error
}

type calendarController struct {
	service service.ICalendarService
	owners  service.IOwnershipService
}

func NewCalendarController(service service.ICalendarService, owners service.IOwnershipService) ICalendarController {
	return &calendarController{service: service, owners: owners}
}

func (c *calendarController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/calendars")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/events", c.AddEvent)
	h.Get("/:id/events", c.ListEvents)
	h.Put("/:calId/events/:eventId", c.UpdateEvent)
	h.Delete("/:calId/events/:eventId", c.DeleteEvent)
}

func (c *calendarController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCalendarRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Success create calendar", res))
}

func (c *calendarController) List(ctx *fiber.Ctx) error {
	workspaceId, err := requiredScope(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), workspaceId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all calendar", res))
}

func (c *calendarController) Delete(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerCalendar, "id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(ok())
}

func (c *calendarController) AddEvent(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerCalendar, "id")
	if err != nil {
		return err
	}

	var req dto.AddEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.CalendarId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddEvent(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add event", res))
}

func (c *calendarController) ListEvents(ctx *fiber.Ctx) error {
	id, err := ownedParam(ctx, c.owners, service.OwnerCalendar, "id")
	if err != nil {
		return err
	}
	from, err := queryTime(ctx, "from")
	if err != nil {
		return err
	}
	to, err := queryTime(ctx, "to")
	if err != nil {
		return err
	}

	res, err := c.service.ListEvents(ctx.UserContext(), &dto.ListEventsRequest{CalendarId: id, From: from, To: to})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get events", res))
}

func (c *calendarController) UpdateEvent(ctx *fiber.Ctx) error {
	calId, err := ownedParam(ctx, c.owners, service.OwnerCalendar, "calId")
	if err != nil {
		return err
	}
	eventId, err := serverutils.ParamUUID(ctx, "eventId")
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid body: %v", err)
	}
	req.CalendarId, req.EventId = calId, eventId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateEvent(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update event", res))
}

func (c *calendarController) DeleteEvent(ctx *fiber.Ctx) error {
	calId, err := ownedParam(ctx, c.owners, service.OwnerCalendar, "calId")
	if err != nil {
		return err
	}
	eventId, err := serverutils.ParamUUID(ctx, "eventId")
	if err != nil {
		return err
	}
	if err := c.service.DeleteEvent(ctx.UserContext(), calId, eventId); err != nil {
		return err
	}
	return ctx.JSON(ok())
}

// queryTime accepts RFC 3339 timestamps or plain dates.
func queryTime(ctx *fiber.Ctx, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.InvalidArgument("%s is not a valid timestamp", name)
}
