package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBlockDataVariants(t *testing.T) {
	heading := DecodeBlockData(BlockHeading, json.RawMessage(`{"level":"4","content":"Plan"}`))
	require.IsType(t, HeadingData{}, heading)
	assert.Equal(t, 4, heading.(HeadingData).Level)
	assert.Equal(t, "Plan", heading.PlainText())

	negative := DecodeBlockData(BlockHeading, json.RawMessage(`{"level":-1}`))
	assert.Equal(t, 2, negative.(HeadingData).Level)

	for _, raw := range []string{`{"level":7}`, `{"level":1e15}`, `{"level":-1e300}`, `{"level":"99999999999"}`} {
		assert.Equal(t, 2, DecodeBlockData(BlockHeading, json.RawMessage(raw)).(HeadingData).Level, raw)
	}

	list := DecodeBlockData(BlockList, json.RawMessage(`{"items":["a",{"text":"b"},3]}`))
	require.IsType(t, ListData{}, list)
	assert.Equal(t, []string{"a", "b", "3"}, list.(ListData).Items)
	assert.Equal(t, "a\nb\n3", list.PlainText())

	code := DecodeBlockData(BlockCode, json.RawMessage(`{"language":"sql","code":"select 1"}`))
	assert.Equal(t, CodeData{rawData: rawData{json.RawMessage(`{"language":"sql","code":"select 1"}`)}, Language: "sql", Content: "select 1"}, code)

	image := DecodeBlockData(BlockImage, json.RawMessage(`{"url":"u","alt":"diagram"}`))
	assert.Equal(t, "diagram", image.PlainText())

	table := DecodeBlockData(BlockTable, json.RawMessage(`{"headers":["z","a"],"rows":[{"z":"1","a":2},[true,null]]}`))
	require.IsType(t, TableData{}, table)
	assert.Equal(t, [][]string{{"1", "2"}, {"true", ""}}, table.(TableData).Rows)
	assert.Equal(t, "z a 1 2 true ", table.PlainText())
}

func TestDecodeBlockDataOpaque(t *testing.T) {
	unknown := DecodeBlockData("callout", json.RawMessage(`{"icon":"!","content":"careful"}`))
	require.IsType(t, OpaqueData{}, unknown)
	assert.Equal(t, BlockKind("callout"), unknown.Kind())
	assert.Equal(t, "careful", unknown.PlainText())

	broken := DecodeBlockData(BlockHeading, json.RawMessage(`"just a string"`))
	require.IsType(t, OpaqueData{}, broken)
	assert.Equal(t, BlockHeading, broken.Kind())
	assert.Equal(t, `"just a string"`, broken.(OpaqueData).Dump())

	empty := DecodeBlockData("divider", nil)
	assert.Equal(t, "{}", string(empty.Raw()))
	assert.Equal(t, "", empty.PlainText())
}

func TestDecodeBlockDataKeepsRawPayload(t *testing.T) {
	raw := json.RawMessage(`{"content":"x","color":"red"}`)
	d := DecodeBlockData(BlockText, raw)
	assert.JSONEq(t, string(raw), string(d.Raw()))
}
