package entity

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

type BlockKind string

const (
	BlockHeading BlockKind = "heading"
	BlockText    BlockKind = "text"
	BlockList    BlockKind = "list"
	BlockCode    BlockKind = "code"
	BlockImage   BlockKind = "image"
	BlockTable   BlockKind = "table"
)

// BlockData is the decoded payload of a block. Every variant keeps the raw JSON
// it was decoded from, which is what gets stored and returned to clients.
type BlockData interface {
	Kind() BlockKind
	Raw() json.RawMessage
	// PlainText is the text indexed for search.
	PlainText() string
}

type rawData struct{ raw json.RawMessage }

func (r rawData) Raw() json.RawMessage { return r.raw }

// MaxHeadingLevel is the deepest heading Markdown can express.
const MaxHeadingLevel = 6

type HeadingData struct {
	rawData
	Level   int
	Content string
}

func (HeadingData) Kind() BlockKind     { return BlockHeading }
func (d HeadingData) PlainText() string { return d.Content }

type TextData struct {
	rawData
	Content string
}

func (TextData) Kind() BlockKind     { return BlockText }
func (d TextData) PlainText() string { return d.Content }

type ListData struct {
	rawData
	Items []string
}

func (ListData) Kind() BlockKind     { return BlockList }
func (d ListData) PlainText() string { return strings.Join(d.Items, "\n") }

type CodeData struct {
	rawData
	Language string
	Content  string
}

func (CodeData) Kind() BlockKind     { return BlockCode }
func (d CodeData) PlainText() string { return d.Content }

type ImageData struct {
	rawData
	Alt string
	URL string
}

func (ImageData) Kind() BlockKind     { return BlockImage }
func (d ImageData) PlainText() string { return d.Alt }

type TableData struct {
	rawData
	Headers []string
	Rows    [][]string
}

func (TableData) Kind() BlockKind { return BlockTable }

func (d TableData) PlainText() string {
	parts := append([]string{}, d.Headers...)
	for _, row := range d.Rows {
		parts = append(parts, row...)
	}
	return strings.Join(parts, " ")
}

// OpaqueData holds blocks of unrecognised kinds, or payloads that are not JSON
// objects.
type OpaqueData struct {
	rawData
	kind    BlockKind
	Content string
}

func (d OpaqueData) Kind() BlockKind   { return d.kind }
func (d OpaqueData) PlainText() string { return d.Content }

// Dump is the compact JSON of the payload, "{}" when there is none.
func (d OpaqueData) Dump() string {
	if len(d.raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, d.raw); err != nil {
		return string(d.raw)
	}
	return buf.String()
}

// DecodeBlockData never fails: anything it cannot interpret becomes opaque.
func DecodeBlockData(kind BlockKind, raw json.RawMessage) BlockData {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return OpaqueData{rawData: rawData{raw}, kind: kind}
	}
	base := rawData{raw}

	switch kind {
	case BlockHeading:
		level := intField(fields["level"])
		if level < 1 || level > MaxHeadingLevel {
			level = 2
		}
		return HeadingData{rawData: base, Level: level, Content: stringField(fields["content"])}
	case BlockText:
		return TextData{rawData: base, Content: stringField(fields["content"])}
	case BlockList:
		return ListData{rawData: base, Items: listItems(fields)}
	case BlockCode:
		content := stringField(fields["content"])
		if content == "" {
			content = stringField(fields["code"])
		}
		return CodeData{rawData: base, Language: stringField(fields["language"]), Content: content}
	case BlockImage:
		alt := stringField(fields["alt"])
		if alt == "" {
			alt = "Image"
		}
		url := stringField(fields["url"])
		if url == "" {
			url = stringField(fields["src"])
		}
		return ImageData{rawData: base, Alt: alt, URL: url}
	case BlockTable:
		return TableData{rawData: base, Headers: scalarList(fields["headers"]), Rows: tableRows(fields["rows"])}
	default:
		return OpaqueData{rawData: base, kind: kind, Content: stringField(fields["content"])}
	}
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func intField(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		if f, err := n.Float64(); err == nil && f >= math.MinInt32 && f <= math.MaxInt32 {
			return int(f)
		}
	}
	if s := stringField(raw); s != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

func listItems(fields map[string]json.RawMessage) []string {
	var items []json.RawMessage
	if raw, ok := fields["items"]; ok && json.Unmarshal(raw, &items) == nil && items != nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if len(item) > 0 && item[0] == '{' {
				var obj map[string]json.RawMessage
				_ = json.Unmarshal(item, &obj)
				out = append(out, stringField(obj["text"]))
				continue
			}
			out = append(out, scalarText(item))
		}
		return out
	}
	content := stringField(fields["content"])
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func scalarList(raw json.RawMessage) []string {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, scalarText(e))
	}
	return out
}

// tableRows accepts rows as arrays or as objects; object rows contribute their
// values in the order the keys appear in the payload.
func tableRows(raw json.RawMessage) [][]string {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return nil
	}
	rows := make([][]string, 0, len(elems))
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		switch {
		case len(e) > 0 && e[0] == '[':
			rows = append(rows, scalarList(e))
		case len(e) > 0 && e[0] == '{':
			rows = append(rows, orderedValues(e))
		default:
			rows = append(rows, []string{scalarText(e)})
		}
	}
	return rows
}

func orderedValues(obj json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(obj))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var values []string
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return values
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			if err == io.EOF {
				break
			}
			return values
		}
		values = append(values, scalarText(v))
	}
	return values
}

// scalarText renders one JSON value as a table or list field.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	switch raw[0] {
	case '"':
		return stringField(raw)
	case '{', '[':
		var buf bytes.Buffer
		if json.Compact(&buf, raw) == nil {
			return buf.String()
		}
	}
	return string(raw)
}
