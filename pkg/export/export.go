package export

import (
	"regexp"
	"strings"
)

const (
	ContentTypeCSV      = "text/csv; charset=utf-8"
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
	ContentTypeCalendar = "text/calendar; charset=utf-8"
)

// Document is one rendered export, ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        string
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w.-]+`)

// SafeFilename replaces every run of characters outside [A-Za-z0-9_.-] with a
// single underscore. An empty name becomes fallback.
func SafeFilename(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ContentDisposition builds the attachment header value for a filename that
// has already been through SafeFilename.
func ContentDisposition(filename string) string {
	return `attachment; filename="` + strings.ReplaceAll(filename, `"`, "_") + `"`
}
