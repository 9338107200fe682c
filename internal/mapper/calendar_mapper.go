package mapper

import (
	"workspace-be/internal/entity"
	"workspace-be/internal/model"
)

type CalendarMapper struct{}

func NewCalendarMapper() *CalendarMapper {
	return &CalendarMapper{}
}

func (m *CalendarMapper) ToEntity(c *model.Calendar) *entity.Calendar {
	if c == nil {
		return nil
	}
	return &entity.Calendar{
		Id:          c.Id,
		WorkspaceId: c.WorkspaceId,
		Name:        c.Name,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *CalendarMapper) ToModel(c *entity.Calendar) *model.Calendar {
	if c == nil {
		return nil
	}
	return &model.Calendar{
		Id:          c.Id,
		WorkspaceId: c.WorkspaceId,
		Name:        c.Name,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *CalendarMapper) ToEntities(calendars []*model.Calendar) []*entity.Calendar {
	entities := make([]*entity.Calendar, len(calendars))
	for i, c := range calendars {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CalendarMapper) EventToEntity(e *model.Event) *entity.Event {
	if e == nil {
		return nil
	}
	return &entity.Event{
		Id:          e.Id,
		CalendarId:  e.CalendarId,
		Title:       e.Title,
		Description: e.Description,
		StartTs:     e.StartTs.UTC(),
		EndTs:       e.EndTs.UTC(),
	}
}

func (m *CalendarMapper) EventToModel(e *entity.Event) *model.Event {
	if e == nil {
		return nil
	}
	return &model.Event{
		Id:          e.Id,
		CalendarId:  e.CalendarId,
		Title:       e.Title,
		Description: e.Description,
		StartTs:     e.StartTs.UTC(),
		EndTs:       e.EndTs.UTC(),
	}
}

func (m *CalendarMapper) EventsToEntities(events []*model.Event) []*entity.Event {
	entities := make([]*entity.Event, len(events))
	for i, e := range events {
		entities[i] = m.EventToEntity(e)
	}
	return entities
}
