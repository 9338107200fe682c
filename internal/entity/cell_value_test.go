package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellValueKinds(t *testing.T) {
	tests := []struct {
		raw      string
		declared string
		kind     CellKind
		text     string
	}{
		{`null`, "", CellNull, ""},
		{`"Ann"`, ColumnTypeText, CellString, "Ann"},
		{`30`, ColumnTypeNumber, CellNumber, "30"},
		{`1.50`, "", CellNumber, "1.50"},
		{`-2e3`, "", CellNumber, "-2e3"},
		{`true`, "", CellBoolean, "true"},
		{`false`, ColumnTypeCheckbox, CellBoolean, "false"},
		{`"2026-02-26T15:00:00Z"`, ColumnTypeDate, CellDate, "2026-02-26T15:00:00Z"},
		{`"2026-02-26"`, ColumnTypeDate, CellDate, "2026-02-26"},
		{`"2026-02-26T15:00:00Z"`, ColumnTypeText, CellString, "2026-02-26T15:00:00Z"},
		{`"next week"`, ColumnTypeDate, CellString, "next week"},
		{`{"value": "x"}`, "", CellObject, "x"},
		{`{"label":"y"}`, "", CellObject, `{"label":"y"}`},
		{`[1, 2]`, "", CellObject, `[1,2]`},
		{`{"value": null}`, "", CellObject, `{"value":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.raw+"/"+tt.declared, func(t *testing.T) {
			v, err := ParseCellValue(json.RawMessage(tt.raw), tt.declared)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.Text())
		})
	}
}

func TestParseCellValueRejectsInvalidJSON(t *testing.T) {
	for _, raw := range []string{``, `nul`, `"open`, `{`, `tru`, `abc`} {
		_, err := ParseCellValue(json.RawMessage(raw), "")
		assert.Error(t, err, raw)
	}
}

func TestCellValueJSONRoundTrip(t *testing.T) {
	for _, raw := range []string{`null`, `"Ann"`, `30`, `1.50`, `true`, `{"a":[1,2]}`, `"2026-02-26T15:00:00Z"`} {
		var v CellValue
		require.NoError(t, json.Unmarshal([]byte(raw), &v))
		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	}
}

func TestCellValueZeroIsNull(t *testing.T) {
	var v CellValue
	assert.True(t, v.IsNull())
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDateValueKeepsOriginalText(t *testing.T) {
	v := StringValue("2026-02-26T15:00:00.000Z").Classify(ColumnTypeDate)
	ts, ok := v.Time()
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"2026-02-26T15:00:00.000Z"`, string(out))
}
