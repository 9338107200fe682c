package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCalendarID struct {
	CalendarID uuid.UUID
}

func (s ByCalendarID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("calendar_id = ?", s.CalendarID)
}

type EventsOfWorkspace struct {
	WorkspaceID uuid.UUID
}

func (s EventsOfWorkspace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("calendar_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("calendars").Select("id").Where("workspace_id = ?", s.WorkspaceID))
}

// StartsBetween keeps events whose start falls in [From, To], both ends
// inclusive. The end timestamp is not considered.
type StartsBetween struct {
	From time.Time
	To   time.Time
}

func (s StartsBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_ts >= ? AND start_ts <= ?", s.From.UTC(), s.To.UTC())
}
