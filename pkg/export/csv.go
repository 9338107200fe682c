package export

import (
	"strings"

	"workspace-be/internal/entity"
)

// CSVField quotes a field, doubling inner quotes, only when it contains a
// comma, a quote or a newline.
func CSVField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// TableCSV renders a header of column names and one line per row, in the
// order the view already carries. Lines are joined with "\n".
func TableCSV(view *entity.TableView) Document {
	lines := make([]string, 0, len(view.Rows)+1)

	header := make([]string, len(view.Columns))
	for i, col := range view.Columns {
		header[i] = CSVField(col.Name)
	}
	lines = append(lines, strings.Join(header, ","))

	for _, row := range view.Rows {
		fields := make([]string, len(view.Columns))
		for i, col := range view.Columns {
			if v, ok := row.Cells[col.Id]; ok {
				fields[i] = CSVField(v.Text())
			}
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return Document{
		Filename:    SafeFilename(view.Table.Name, "table") + ".csv",
		ContentType: ContentTypeCSV,
		Body:        strings.Join(lines, "\n"),
	}
}
