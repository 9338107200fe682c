package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"workspace-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCell(t *testing.T, raw string) entity.CellValue {
	t.Helper()
	v, err := entity.ParseCellValue(json.RawMessage(raw), "")
	require.NoError(t, err)
	return v
}

func TestCSVField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"two\nlines", "\"two\nlines\""},
		{`a,b"c`, `"a,b""c"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CSVField(tt.in), tt.in)
	}
}

func TestCSVFieldRoundTripsThroughStandardReader(t *testing.T) {
	encoded := CSVField(`a,b"c`)
	records, err := csv.NewReader(strings.NewReader(encoded + "\n")).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{`a,b"c`}, records[0])
}

func TestTableCSV(t *testing.T) {
	name := entity.Column{Id: uuid.New(), Name: "Name", Type: "text", OrderIndex: 0}
	age := entity.Column{Id: uuid.New(), Name: "Age", Type: "number", OrderIndex: 1}
	tags := entity.Column{Id: uuid.New(), Name: "Tags, misc", Type: "text", OrderIndex: 2}

	view := &entity.TableView{
		Table:   entity.Table{Id: uuid.New(), Name: "People / 2026"},
		Columns: []entity.Column{name, age, tags},
		Rows: []entity.TableRowView{
			{Id: uuid.New(), CreatedAt: time.Now(), Cells: map[uuid.UUID]entity.CellValue{
				name.Id: entity.StringValue("Ann"),
				age.Id:  mustCell(t, "30"),
			}},
			{Id: uuid.New(), CreatedAt: time.Now(), Cells: map[uuid.UUID]entity.CellValue{
				name.Id: entity.NullValue(),
				tags.Id: mustCell(t, `{"value":"x,y"}`),
			}},
			{Id: uuid.New(), CreatedAt: time.Now(), Cells: map[uuid.UUID]entity.CellValue{
				tags.Id: mustCell(t, `{"a":1}`),
				age.Id:  entity.BoolValue(true),
			}},
		},
	}

	doc := TableCSV(view)
	assert.Equal(t, "People_2026.csv", doc.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)
	assert.Equal(t, strings.Join([]string{
		`Name,Age,"Tags, misc"`,
		`Ann,30,`,
		`,,"x,y"`,
		`,true,"{""a"":1}"`,
	}, "\n"), doc.Body)
}

func TestTableCSVEmptyTable(t *testing.T) {
	doc := TableCSV(&entity.TableView{Table: entity.Table{Name: ""}})
	assert.Equal(t, "table.csv", doc.Filename)
	assert.Equal(t, "", doc.Body)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "Q3_plan_v2.final", SafeFilename("Q3 plan: v2.final", "x"))
	assert.Equal(t, "document", SafeFilename("", "document"))
	assert.Equal(t, "_", SafeFilename("日本", "x"))
	assert.Equal(t, `attachment; filename="a.csv"`, ContentDisposition("a.csv"))
}
