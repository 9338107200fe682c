package entity

import (
	"time"

	"github.com/google/uuid"
)

type Calendar struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Name        string
	CreatedAt   time.Time
}

type Event struct {
	Id          uuid.UUID
	CalendarId  uuid.UUID
	Title       string
	Description *string
	StartTs     time.Time
	EndTs       time.Time
}

type CalendarView struct {
	Calendar Calendar
	Events   []Event
}
