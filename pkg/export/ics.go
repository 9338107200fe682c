package export

import (
	"sort"
	"strings"
	"time"

	"workspace-be/internal/entity"
)

const (
	icsTimeLayout = "20060102T150405Z"
	icsProductID  = "-//workspace-be//calendar export//EN"
	icsUIDDomain  = "workspace-be"
	crlf          = "\r\n"
)

var icsEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, "\n", `\n`)

// ICSText escapes backslash, semicolon, comma and newline, in that order.
// A CRLF pair counts as one newline.
func ICSText(s string) string {
	return icsEscaper.Replace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// ICSTime renders t in UTC basic format, dropping sub-second precision.
func ICSTime(t time.Time) string {
	return t.UTC().Format(icsTimeLayout)
}

// CalendarICS renders one VEVENT per event, ordered by start time with the
// event id breaking ties. The view's own slice is left untouched.
func CalendarICS(view *entity.CalendarView) Document {
	events := make([]entity.Event, len(view.Events))
	copy(events, view.Events)
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].StartTs.Equal(events[j].StartTs) {
			return events[i].StartTs.Before(events[j].StartTs)
		}
		return events[i].Id.String() < events[j].Id.String()
	})

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + icsProductID,
		"CALSCALE:GREGORIAN",
		"X-WR-CALNAME:" + ICSText(view.Calendar.Name),
	}
	for _, ev := range events {
		start := ICSTime(ev.StartTs)
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+ev.Id.String()+"@"+icsUIDDomain,
			"DTSTAMP:"+start,
			"DTSTART:"+start,
			"DTEND:"+ICSTime(ev.EndTs),
			"SUMMARY:"+ICSText(ev.Title),
		)
		if ev.Description != nil && *ev.Description != "" {
			lines = append(lines, "DESCRIPTION:"+ICSText(*ev.Description))
		}
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR")

	return Document{
		Filename:    SafeFilename(view.Calendar.Name, "calendar") + ".ics",
		ContentType: ContentTypeCalendar,
		Body:        strings.Join(lines, crlf) + crlf,
	}
}
