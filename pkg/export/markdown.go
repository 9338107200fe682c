package export

import (
	"strings"

	"workspace-be/internal/entity"
)

// PageMarkdown renders the title as a level-one heading followed by every
// block in order. It never fails: unknown kinds print their content or a JSON
// dump of their payload.
func PageMarkdown(view *entity.PageView) Document {
	var sb strings.Builder
	sb.WriteString("# " + view.Page.Title + "\n\n")

	for _, block := range view.Blocks {
		data := block.Data
		if data == nil {
			data = entity.DecodeBlockData(block.Kind, nil)
		}
		writeBlock(&sb, data)
	}

	return Document{
		Filename:    SafeFilename(view.Page.Title, "document") + ".md",
		ContentType: ContentTypeMarkdown,
		Body:        sb.String(),
	}
}

func writeBlock(sb *strings.Builder, data entity.BlockData) {
	switch d := data.(type) {
	case entity.HeadingData:
		level := d.Level
		if level < 1 || level > entity.MaxHeadingLevel {
			level = 2
		}
		sb.WriteString(strings.Repeat("#", level) + " " + d.Content + "\n\n")
	case entity.TextData:
		sb.WriteString(d.Content + "\n\n")
	case entity.ListData:
		for _, item := range d.Items {
			sb.WriteString("- " + item + "\n")
		}
		sb.WriteString("\n")
	case entity.CodeData:
		sb.WriteString("```" + d.Language + "\n" + d.Content + "\n```\n\n")
	case entity.ImageData:
		sb.WriteString("![" + d.Alt + "](" + d.URL + ")\n\n")
	case entity.TableData:
		if len(d.Headers) > 0 {
			sb.WriteString(tableLine(d.Headers))
			sep := make([]string, len(d.Headers))
			for i := range sep {
				sep[i] = "---"
			}
			sb.WriteString(tableLine(sep))
		}
		for _, row := range d.Rows {
			sb.WriteString(tableLine(row))
		}
		sb.WriteString("\n")
	case entity.OpaqueData:
		if d.Content != "" {
			sb.WriteString(d.Content + "\n\n")
		} else {
			sb.WriteString(d.Dump() + "\n\n")
		}
	}
}

func tableLine(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |\n"
}
