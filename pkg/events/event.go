package events

import (
	"context"
	"time"
)

const (
	WorkspaceCreated = "WORKSPACE_CREATED"
	WorkspaceDeleted = "WORKSPACE_DELETED"
	TableChanged     = "TABLE_CHANGED"
	TableDeleted     = "TABLE_DELETED"
	PageUpdated      = "PAGE_UPDATED"
	PageDeleted      = "PAGE_DELETED"
	CalendarChanged  = "CALENDAR_CHANGED"
	CalendarDeleted  = "CALENDAR_DELETED"
	FileUploaded     = "FILE_UPLOADED"
	FileDeleted      = "FILE_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PAGE_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to whatever bus is configured.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
