package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Calendar struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
}

func (Calendar) TableName() string {
	return "calendars"
}

func (c *Calendar) BeforeCreate(tx *gorm.DB) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	return nil
}

type Event struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CalendarId  uuid.UUID `gorm:"type:uuid;not null;index:idx_events_calendar_start,priority:1"`
	Title       string    `gorm:"type:varchar(500);not null"`
	Description *string   `gorm:"type:text"`
	StartTs     time.Time `gorm:"not null;index:idx_events_calendar_start,priority:2"`
	EndTs       time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	Calendar    *Calendar `gorm:"foreignKey:CalendarId;constraint:OnDelete:CASCADE"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.Id == uuid.Nil {
		e.Id = uuid.New()
	}
	return nil
}
