package export

import (
	"encoding/json"
	"testing"

	"workspace-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func block(kind entity.BlockKind, raw string) entity.Block {
	return entity.Block{Kind: kind, Data: entity.DecodeBlockData(kind, json.RawMessage(raw))}
}

func TestPageMarkdownBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block entity.Block
		want  string
	}{
		{"heading level 3", block(entity.BlockHeading, `{"level":3,"content":"X"}`), "### X\n\n"},
		{"heading default level", block(entity.BlockHeading, `{"content":"Y"}`), "## Y\n\n"},
		{"heading level too deep", block(entity.BlockHeading, `{"level":1e15,"content":"X"}`), "## X\n\n"},
		{"heading level seven", block(entity.BlockHeading, `{"level":7,"content":"X"}`), "## X\n\n"},
		{"heading level six", block(entity.BlockHeading, `{"level":6,"content":"X"}`), "###### X\n\n"},
		{"heading built out of range", entity.Block{Kind: entity.BlockHeading, Data: entity.HeadingData{Level: 1 << 40, Content: "Z"}}, "## Z\n\n"},
		{"text", block(entity.BlockText, `{"content":"Hello"}`), "Hello\n\n"},
		{"list items", block(entity.BlockList, `{"items":["a",{"text":"b"},{}]}`), "- a\n- b\n- \n\n"},
		{"list from content", block(entity.BlockList, `{"content":"one\ntwo"}`), "- one\n- two\n\n"},
		{"empty list", block(entity.BlockList, `{}`), "\n"},
		{"code", block(entity.BlockCode, `{"language":"go","content":"x := 1"}`), "```go\nx := 1\n```\n\n"},
		{"code alias", block(entity.BlockCode, `{"code":"ls"}`), "```\nls\n```\n\n"},
		{"image", block(entity.BlockImage, `{"src":"a.png"}`), "![Image](a.png)\n\n"},
		{
			"table with object rows",
			block(entity.BlockTable, `{"headers":["b","a"],"rows":[["1","2"],{"b":3,"a":null}]}`),
			"| b | a |\n| --- | --- |\n| 1 | 2 |\n| 3 |  |\n\n",
		},
		{"unknown with content", block("quote", `{"content":"wise"}`), "wise\n\n"},
		{"unknown without content", block("embed", `{"url":"https://x"}`), "{\"url\":\"https://x\"}\n\n"},
		{"unknown without payload", block("divider", ``), "{}\n\n"},
		{"non-object payload", block(entity.BlockText, `[1,2]`), "[1,2]\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := PageMarkdown(&entity.PageView{
				Page:   entity.Page{Title: "T"},
				Blocks: []entity.Block{tt.block},
			})
			assert.Equal(t, "# T\n\n"+tt.want, doc.Body)
		})
	}
}

func TestPageMarkdownFilename(t *testing.T) {
	doc := PageMarkdown(&entity.PageView{Page: entity.Page{Title: "Meeting notes #4"}})
	assert.Equal(t, "Meeting_notes_4.md", doc.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", doc.ContentType)

	doc = PageMarkdown(&entity.PageView{})
	assert.Equal(t, "document.md", doc.Filename)
	assert.Equal(t, "# \n\n", doc.Body)
}
