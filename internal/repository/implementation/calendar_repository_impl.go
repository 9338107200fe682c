package implementation

import (
	"context"
	"errors"

	"workspace-be/internal/entity"
	"workspace-be/internal/mapper"
	"workspace-be/internal/model"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/contract"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CalendarMapper
}

func NewCalendarRepository(db *gorm.DB) contract.CalendarRepository {
	return &CalendarRepositoryImpl{db: db, mapper: mapper.NewCalendarMapper()}
}

func (r *CalendarRepositoryImpl) Create(ctx context.Context, calendar *entity.Calendar) error {
	m := r.mapper.ToModel(calendar)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create calendar", err)
	}
	*calendar = *r.mapper.ToEntity(m)
	return nil
}

func (r *CalendarRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Calendar{}, "id = ?", id)
	return deleteResult(res, "delete calendar", "calendar", id)
}

func (r *CalendarRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.Calendar{}, "delete calendars", specs...)
}

func (r *CalendarRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Calendar, error) {
	var m model.Calendar
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find calendar", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CalendarRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Calendar, error) {
	var models []*model.Calendar
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list calendars", err)
	}
	return r.mapper.ToEntities(models), nil
}

type EventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CalendarMapper
}

func NewEventRepository(db *gorm.DB) contract.EventRepository {
	return &EventRepositoryImpl{db: db, mapper: mapper.NewCalendarMapper()}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *entity.Event) error {
	m := r.mapper.EventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create event", err)
	}
	*event = *r.mapper.EventToEntity(m)
	return nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *entity.Event) error {
	m := r.mapper.EventToModel(event)
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", event.Id).
		Select("title", "description", "start_ts", "end_ts").
		Updates(m)
	if res.Error != nil {
		return apperror.StorageFailure("update event", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("event %s not found", event.Id)
	}
	return nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id)
	return deleteResult(res, "delete event", "event", id)
}

func (r *EventRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.Event{}, "delete events", specs...)
}

func (r *EventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error) {
	var m model.Event
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find event", err)
	}
	return r.mapper.EventToEntity(&m), nil
}

func (r *EventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error) {
	var models []*model.Event
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list events", err)
	}
	return r.mapper.EventsToEntities(models), nil
}
