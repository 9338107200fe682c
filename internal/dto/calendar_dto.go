package dto

import (
	"time"

	"workspace-be/internal/entity"

	"github.com/google/uuid"
)

type CreateCalendarRequest struct {
	WorkspaceId uuid.UUID `json:"workspaceId" validate:"required"`
	Name        string    `json:"name" validate:"required,max=255"`
}

type CalendarResponse struct {
	Id          uuid.UUID `json:"id"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListCalendarsResponse struct {
	Calendars []CalendarResponse `json:"calendars"`
}

type AddEventRequest struct {
	CalendarId  uuid.UUID `json:"-"`
	Title       string    `json:"title" validate:"required,max=500"`
	Description *string   `json:"description"`
	StartTs     time.Time `json:"startTs" validate:"required"`
	EndTs       time.Time `json:"endTs" validate:"required"`
}

// UpdateEventRequest is a partial patch: nil fields are left unchanged and an
// empty description clears it.
type UpdateEventRequest struct {
	CalendarId  uuid.UUID  `json:"-"`
	EventId     uuid.UUID  `json:"-"`
	Title       *string    `json:"title" validate:"omitempty,max=500"`
	Description *string    `json:"description"`
	StartTs     *time.Time `json:"startTs"`
	EndTs       *time.Time `json:"endTs"`
}

type ListEventsRequest struct {
	CalendarId uuid.UUID
	From       *time.Time
	To         *time.Time
}

type EventResponse struct {
	Id          uuid.UUID `json:"id"`
	CalendarId  uuid.UUID `json:"calendarId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartTs     time.Time `json:"startTs"`
	EndTs       time.Time `json:"endTs"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

func NewCalendarResponse(c *entity.Calendar) CalendarResponse {
	return CalendarResponse{Id: c.Id, WorkspaceId: c.WorkspaceId, Name: c.Name, CreatedAt: c.CreatedAt}
}

func NewEventResponse(e *entity.Event) EventResponse {
	return EventResponse{
		Id:          e.Id,
		CalendarId:  e.CalendarId,
		Title:       e.Title,
		Description: e.Description,
		StartTs:     e.StartTs,
		EndTs:       e.EndTs,
	}
}
