package export

import (
	"strings"
	"testing"
	"time"

	"workspace-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICSTime(t *testing.T) {
	ts, err := time.Parse(time.RFC3339Nano, "2026-02-26T15:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "20260226T150000Z", ICSTime(ts))

	withOffset, err := time.Parse(time.RFC3339Nano, "2026-02-26T17:30:45.999+02:00")
	require.NoError(t, err)
	assert.Equal(t, "20260226T153045Z", ICSTime(withOffset))
}

func TestICSText(t *testing.T) {
	assert.Equal(t, `a\\b\;c\,d\ne`, ICSText("a\\b;c,d\ne"))
	assert.Equal(t, `x\ny`, ICSText("x\r\ny"))
	// an escaped backslash is not re-escaped by the later rules
	assert.Equal(t, `\\\,`, ICSText(`\,`))
}

func TestCalendarICS(t *testing.T) {
	late := uuid.MustParse("00000000-0000-0000-0000-000000000003")
	tieA := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	tieB := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	desc := "Bring notes; snacks, too"

	start := time.Date(2026, 2, 26, 15, 0, 0, 0, time.UTC)
	view := &entity.CalendarView{
		Calendar: entity.Calendar{Name: "Team, Ops"},
		Events: []entity.Event{
			{Id: late, Title: "Retro", StartTs: start.Add(time.Hour), EndTs: start.Add(2 * time.Hour)},
			{Id: tieB, Title: "B", StartTs: start, EndTs: start.Add(30 * time.Minute)},
			{Id: tieA, Title: "A", Description: &desc, StartTs: start, EndTs: start.Add(30 * time.Minute)},
		},
	}

	doc := CalendarICS(view)
	assert.Equal(t, "Team_Ops.ics", doc.Filename)
	assert.Equal(t, "text/calendar; charset=utf-8", doc.ContentType)

	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//workspace-be//calendar export//EN",
		"CALSCALE:GREGORIAN",
		`X-WR-CALNAME:Team\, Ops`,
		"BEGIN:VEVENT",
		"UID:" + tieA.String() + "@workspace-be",
		"DTSTAMP:20260226T150000Z",
		"DTSTART:20260226T150000Z",
		"DTEND:20260226T153000Z",
		"SUMMARY:A",
		`DESCRIPTION:Bring notes\; snacks\, too`,
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:" + tieB.String() + "@workspace-be",
		"DTSTAMP:20260226T150000Z",
		"DTSTART:20260226T150000Z",
		"DTEND:20260226T153000Z",
		"SUMMARY:B",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:" + late.String() + "@workspace-be",
		"DTSTAMP:20260226T160000Z",
		"DTSTART:20260226T160000Z",
		"DTEND:20260226T170000Z",
		"SUMMARY:Retro",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"
	assert.Equal(t, want, doc.Body)

	// input order is preserved for the caller
	assert.Equal(t, late, view.Events[0].Id)
}
