package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type CellKind string

const (
	CellNull    CellKind = "null"
	CellString  CellKind = "string"
	CellNumber  CellKind = "number"
	CellBoolean CellKind = "boolean"
	CellDate    CellKind = "date"
	CellObject  CellKind = "object"
)

// CellValue is the value held by a table cell. Numbers keep their JSON literal
// and dates keep their original text so a value round-trips byte for byte.
type CellValue struct {
	kind CellKind
	text string
	b    bool
	at   time.Time
	raw  json.RawMessage
}

func NullValue() CellValue { return CellValue{kind: CellNull} }

func StringValue(s string) CellValue { return CellValue{kind: CellString, text: s} }

func BoolValue(b bool) CellValue { return CellValue{kind: CellBoolean, b: b} }

func NumberValue(n json.Number) CellValue { return CellValue{kind: CellNumber, text: n.String()} }

func DateValue(t time.Time) CellValue {
	return CellValue{kind: CellDate, text: t.UTC().Format(time.RFC3339Nano), at: t.UTC()}
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCellValue classifies raw JSON into a cell value. A string in a date
// column that parses as a date becomes a date value.
func ParseCellValue(raw json.RawMessage, declaredType string) (CellValue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return CellValue{}, fmt.Errorf("empty cell value")
	}

	switch trimmed[0] {
	case 'n':
		if string(trimmed) != "null" {
			return CellValue{}, fmt.Errorf("invalid cell value %q", trimmed)
		}
		return NullValue(), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return CellValue{}, fmt.Errorf("invalid cell value: %w", err)
		}
		return BoolValue(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return CellValue{}, fmt.Errorf("invalid cell value: %w", err)
		}
		return StringValue(s).Classify(declaredType), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return CellValue{}, fmt.Errorf("invalid cell value: %w", err)
		}
		return CellValue{kind: CellObject, raw: buf.Bytes()}, nil
	default:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return CellValue{}, fmt.Errorf("invalid cell value: %w", err)
		}
		return NumberValue(n), nil
	}
}

// Classify re-reads a plain string under a column's declared type.
func (v CellValue) Classify(declaredType string) CellValue {
	if v.kind != CellString || !strings.EqualFold(declaredType, ColumnTypeDate) {
		return v
	}
	if t, ok := parseDate(v.text); ok {
		return CellValue{kind: CellDate, text: v.text, at: t.UTC()}
	}
	return v
}

func (v CellValue) Kind() CellKind {
	if v.kind == "" {
		return CellNull
	}
	return v.kind
}

func (v CellValue) IsNull() bool { return v.Kind() == CellNull }

func (v CellValue) Time() (time.Time, bool) { return v.at, v.kind == CellDate }

func (v CellValue) Bool() (bool, bool) { return v.b, v.kind == CellBoolean }

// Text renders the value as a plain field. Objects carrying a "value" property
// render that property, other objects their compact JSON.
func (v CellValue) Text() string {
	switch v.Kind() {
	case CellNull:
		return ""
	case CellString, CellNumber, CellDate:
		return v.text
	case CellBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case CellObject:
		if inner, ok := v.valueProperty(); ok {
			return inner
		}
		return string(v.raw)
	}
	return ""
}

func (v CellValue) valueProperty() (string, bool) {
	if len(v.raw) == 0 || v.raw[0] != '{' {
		return "", false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v.raw, &obj); err != nil {
		return "", false
	}
	inner, ok := obj["value"]
	if !ok {
		return "", false
	}
	parsed, err := ParseCellValue(inner, "")
	if err != nil || parsed.IsNull() {
		return "", false
	}
	return parsed.Text(), true
}

func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case CellString, CellDate:
		return json.Marshal(v.text)
	case CellNumber:
		return []byte(v.text), nil
	case CellBoolean:
		return json.Marshal(v.b)
	case CellObject:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (v *CellValue) UnmarshalJSON(data []byte) error {
	parsed, err := ParseCellValue(data, "")
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
