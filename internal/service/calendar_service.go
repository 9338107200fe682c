package service

import (
	"context"
	"time"

	"workspace-be/internal/dto"
	"workspace-be/internal/entity"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/scope"
	"workspace-be/internal/repository/specification"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/events"

	"github.com/google/uuid"
)

var (
	defaultRangeFrom = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	defaultRangeTo   = time.Date(2999, 12, 31, 0, 0, 0, 0, time.UTC)
)

type ICalendarService interface {
	Create(ctx context.Context, req *dto.CreateCalendarRequest) (*dto.CalendarResponse, error)
	List(ctx context.Context, workspaceId uuid.UUID) (*dto.ListCalendarsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddEvent(ctx context.Context, req *dto.AddEventRequest) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, req *dto.ListEventsRequest) (*dto.ListEventsResponse, error)
	UpdateEvent(ctx context.Context, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, calendarId, eventId uuid.UUID) error
}

type calendarService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   IChangeNotifier
}

func NewCalendarService(uowFactory unitofwork.RepositoryFactory, notifier IChangeNotifier) ICalendarService {
	return &calendarService{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (c *calendarService) Create(ctx context.Context, req *dto.CreateCalendarRequest) (*dto.CalendarResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireWorkspace(ctx, uow, req.WorkspaceId); err != nil {
		return nil, err
	}

	calendar := entity.Calendar{WorkspaceId: req.WorkspaceId, Name: req.Name}
	if err := uow.CalendarRepository().Create(ctx, &calendar); err != nil {
		return nil, err
	}

	c.notifier.Notify(ctx, events.CalendarChanged, map[string]interface{}{
		"calendar_id":  calendar.Id.String(),
		"workspace_id": calendar.WorkspaceId.String(),
	})
	res := dto.NewCalendarResponse(&calendar)
	return &res, nil
}

func (c *calendarService) List(ctx context.Context, workspaceId uuid.UUID) (*dto.ListCalendarsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	calendars, err := uow.CalendarRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.Scope(scope.OrderByNameAsc),
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListCalendarsResponse{Calendars: make([]dto.CalendarResponse, 0, len(calendars))}
	for _, cal := range calendars {
		res.Calendars = append(res.Calendars, dto.NewCalendarResponse(cal))
	}
	return res, nil
}

func (c *calendarService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	calendar, err := requireCalendar(ctx, uow, id)
	if err != nil {
		return err
	}
	if _, err := uow.EventRepository().DeleteAll(ctx, specification.ByCalendarID{CalendarID: id}); err != nil {
		return err
	}
	if err := uow.CalendarRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.StorageFailure("commit calendar delete", err)
	}

	c.notifier.Notify(ctx, events.CalendarDeleted, map[string]interface{}{
		"calendar_id":  id.String(),
		"workspace_id": calendar.WorkspaceId.String(),
	})
	return nil
}

func (c *calendarService) AddEvent(ctx context.Context, req *dto.AddEventRequest) (*dto.EventResponse, error) {
	if req.EndTs.Before(req.StartTs) {
		return nil, apperror.InvalidArgument("endTs must not be before startTs")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireCalendar(ctx, uow, req.CalendarId); err != nil {
		return nil, err
	}

	event := entity.Event{
		CalendarId:  req.CalendarId,
		Title:       req.Title,
		Description: normalizeDescription(req.Description),
		StartTs:     req.StartTs.UTC(),
		EndTs:       req.EndTs.UTC(),
	}
	if err := uow.EventRepository().Create(ctx, &event); err != nil {
		return nil, err
	}

	c.changed(ctx, event.CalendarId)
	res := dto.NewEventResponse(&event)
	return &res, nil
}

// ListEvents keeps events whose start falls in [from, to]; the end timestamp
// is not considered. Missing bounds span every representable event.
func (c *calendarService) ListEvents(ctx context.Context, req *dto.ListEventsRequest) (*dto.ListEventsResponse, error) {
	from, to := defaultRangeFrom, defaultRangeTo
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	evts, err := uow.EventRepository().FindAll(ctx,
		specification.ByCalendarID{CalendarID: req.CalendarId},
		specification.StartsBetween{From: from, To: to},
		specification.Scope(scope.OrderByStartAsc),
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListEventsResponse{Events: make([]dto.EventResponse, 0, len(evts))}
	for _, e := range evts {
		res.Events = append(res.Events, dto.NewEventResponse(e))
	}
	return res, nil
}

// UpdateEvent applies a partial patch. An empty description clears it.
func (c *calendarService) UpdateEvent(ctx context.Context, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if req.Title == nil && req.Description == nil && req.StartTs == nil && req.EndTs == nil {
		return nil, apperror.InvalidArgument("nothing to update")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	event, err := uow.EventRepository().FindOne(ctx,
		specification.ByID{ID: req.EventId},
		specification.ByCalendarID{CalendarID: req.CalendarId},
	)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperror.NotFound("event %s not found", req.EventId)
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = normalizeDescription(req.Description)
	}
	if req.StartTs != nil {
		event.StartTs = req.StartTs.UTC()
	}
	if req.EndTs != nil {
		event.EndTs = req.EndTs.UTC()
	}
	if event.EndTs.Before(event.StartTs) {
		return nil, apperror.InvalidArgument("endTs must not be before startTs")
	}

	if err := uow.EventRepository().Update(ctx, event); err != nil {
		return nil, err
	}

	c.changed(ctx, event.CalendarId)
	res := dto.NewEventResponse(event)
	return &res, nil
}

func (c *calendarService) DeleteEvent(ctx context.Context, calendarId, eventId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	event, err := uow.EventRepository().FindOne(ctx,
		specification.ByID{ID: eventId},
		specification.ByCalendarID{CalendarID: calendarId},
	)
	if err != nil {
		return err
	}
	if event == nil {
		return apperror.NotFound("event %s not found", eventId)
	}
	if err := uow.EventRepository().Delete(ctx, eventId); err != nil {
		return err
	}

	c.changed(ctx, calendarId)
	return nil
}

func (c *calendarService) changed(ctx context.Context, calendarId uuid.UUID) {
	c.notifier.Notify(ctx, events.CalendarChanged, map[string]interface{}{"calendar_id": calendarId.String()})
}

func loadCalendar(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.CalendarView, error) {
	calendar, err := requireCalendar(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	evts, err := uow.EventRepository().FindAll(ctx,
		specification.ByCalendarID{CalendarID: id},
		specification.Scope(scope.OrderByStartAsc),
	)
	if err != nil {
		return nil, err
	}

	view := &entity.CalendarView{Calendar: *calendar, Events: make([]entity.Event, 0, len(evts))}
	for _, e := range evts {
		view.Events = append(view.Events, *e)
	}
	return view, nil
}

func requireCalendar(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Calendar, error) {
	calendar, err := uow.CalendarRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if calendar == nil {
		return nil, apperror.NotFound("calendar %s not found", id)
	}
	return calendar, nil
}

func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	return d
}
