package service

import (
	"context"
	"testing"
	"time"

	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC)
}

func newCalendarFixture(t *testing.T) (*fixture, ICalendarService, uuid.UUID) {
	f := newFixture(t)
	svc := NewCalendarService(f.factory, f.notifier)
	cal, err := svc.Create(context.Background(), &dto.CreateCalendarRequest{WorkspaceId: f.workspace(t, "W"), Name: "Team"})
	require.NoError(t, err)
	return f, svc, cal.Id
}

func TestListEventsRangeIsInclusiveOnStart(t *testing.T) {
	_, svc, calId := newCalendarFixture(t)
	ctx := context.Background()

	for _, h := range []int{8, 10, 12, 14} {
		_, err := svc.AddEvent(ctx, &dto.AddEventRequest{CalendarId: calId, Title: "e", StartTs: at(h), EndTs: at(h + 1)})
		require.NoError(t, err)
	}

	from, to := at(10), at(12)
	res, err := svc.ListEvents(ctx, &dto.ListEventsRequest{CalendarId: calId, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, res.Events, 2)
	assert.True(t, res.Events[0].StartTs.Equal(at(10)))
	assert.True(t, res.Events[1].StartTs.Equal(at(12)))

	all, err := svc.ListEvents(ctx, &dto.ListEventsRequest{CalendarId: calId})
	require.NoError(t, err)
	assert.Len(t, all.Events, 4)
}

func TestAddEventRejectsInvertedRange(t *testing.T) {
	_, svc, calId := newCalendarFixture(t)

	_, err := svc.AddEvent(context.Background(), &dto.AddEventRequest{CalendarId: calId, Title: "e", StartTs: at(10), EndTs: at(9)})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.AddEvent(context.Background(), &dto.AddEventRequest{CalendarId: uuid.New(), Title: "e", StartTs: at(9), EndTs: at(10)})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateEventPartialPatch(t *testing.T) {
	_, svc, calId := newCalendarFixture(t)
	ctx := context.Background()

	desc := "agenda"
	ev, err := svc.AddEvent(ctx, &dto.AddEventRequest{CalendarId: calId, Title: "Standup", Description: &desc, StartTs: at(9), EndTs: at(10)})
	require.NoError(t, err)

	_, err = svc.UpdateEvent(ctx, &dto.UpdateEventRequest{CalendarId: calId, EventId: ev.Id})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	title := "Daily"
	updated, err := svc.UpdateEvent(ctx, &dto.UpdateEventRequest{CalendarId: calId, EventId: ev.Id, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Daily", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "agenda", *updated.Description)
	assert.True(t, updated.StartTs.Equal(at(9)))

	empty := ""
	updated, err = svc.UpdateEvent(ctx, &dto.UpdateEventRequest{CalendarId: calId, EventId: ev.Id, Description: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	early := at(8)
	_, err = svc.UpdateEvent(ctx, &dto.UpdateEventRequest{CalendarId: calId, EventId: ev.Id, EndTs: &early})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.UpdateEvent(ctx, &dto.UpdateEventRequest{CalendarId: uuid.New(), EventId: ev.Id, Title: &title})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCalendarICSExport(t *testing.T) {
	f, svc, calId := newCalendarFixture(t)
	ctx := context.Background()

	_, err := svc.AddEvent(ctx, &dto.AddEventRequest{CalendarId: calId, Title: "Plan, review", StartTs: at(9), EndTs: at(10)})
	require.NoError(t, err)

	doc, err := NewExportService(f.factory).Export(ctx, ExportKindCalendar, calId, "ical")
	require.NoError(t, err)
	assert.Equal(t, "Team.ics", doc.Filename)
	assert.Contains(t, doc.Body, "DTSTART:20240301T090000Z\r\n")
	assert.Contains(t, doc.Body, "SUMMARY:Plan\\, review\r\n")
}

func TestDeleteCalendarRemovesEvents(t *testing.T) {
	f, svc, calId := newCalendarFixture(t)
	ctx := context.Background()

	_, err := svc.AddEvent(ctx, &dto.AddEventRequest{CalendarId: calId, Title: "e", StartTs: at(9), EndTs: at(10)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, calId))

	var count int64
	require.NoError(t, f.db.Table("events").Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, svc.Delete(ctx, calId), apperror.ErrNotFound)
}
