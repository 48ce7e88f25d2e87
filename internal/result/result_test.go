package result

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		raw    string
		kind   CellKind
		target int
	}{
		{"", CellEmpty, -1},
		{"   ", CellEmpty, -1},
		{"acc", CellAccept, -1},
		{"s7", CellShift, 7},
		{"r3", CellReduce, 3},
		{"5", CellGoto, 5},
		{"sx", CellShift, -1},
		{"E", CellGoto, -1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cell := ParseCell(tt.raw)
			assert.Equal(t, tt.kind, cell.Kind)
			assert.Equal(t, tt.target, cell.Target)
		})
	}
}

func TestParseActionTag(t *testing.T) {
	assert.Equal(t, TagShift, ParseActionTag("shift 5"))
	assert.Equal(t, TagReduce, ParseActionTag("reduce by E -> T"))
	assert.Equal(t, TagAccept, ParseActionTag("accept"))
	assert.Equal(t, TagError, ParseActionTag("error: unexpected token"))
	assert.Equal(t, TagOther, ParseActionTag("goto 4"))
	// shift precedes error when both appear
	assert.Equal(t, TagShift, ParseActionTag("shift after error recovery"))
}

const conflictResponse = `{
  "success": true,
  "parsing_result": {"message": "Parser construido con conflictos"},
  "statistics": {"num_states_afn": 12, "num_states_afd": 9, "num_productions": 4, "is_lr1": false, "conflicts": 1},
  "visualizations": {
    "images_available": false,
    "afn_image": null,
    "afd_image": null,
    "table_data": {
      "table": {
        "headers": {"action": ["id", "+", "$"], "goto": ["E"]},
        "rows": [
          {"state": 0, "action": {"id": "s2"}, "goto": {"E": 1}},
          {"state": 4, "action": {"+": "s7", "$": "r3"}, "goto": {"E": null}}
        ]
      },
      "grammar_rules": ["S -> E", "E -> E + E", "E -> id"],
      "conflicts": [
        {"state": 4, "terminal": "+", "type": "shift_reduce", "action1": ["shift", 7], "action2": "r3"}
      ]
    }
  }
}`

func TestDecodeConflictTable(t *testing.T) {
	res, err := DecodeBytes([]byte(conflictResponse))
	require.NoError(t, err)

	assert.True(t, res.Succeeded)
	assert.False(t, res.Statistics.IsLR1)
	assert.Equal(t, 1, res.ConflictCount())
	assert.Nil(t, res.Trace)
	assert.Nil(t, res.Diagrams)

	require.NotNil(t, res.Table)
	assert.Equal(t, []int{0, 4}, res.Table.StateIDs)
	assert.Equal(t, []string{"id", "+", "$"}, res.Table.ActionColumns)

	require.Len(t, res.Table.Conflicts, 1)
	c := res.Table.Conflicts[0]
	assert.Equal(t, ConflictShiftReduce, c.Kind)
	assert.Equal(t, "s7", c.Action1)
	assert.Equal(t, "r3", c.Action2)

	assert.Equal(t, CellShift, res.Table.ActionCell(4, "+").Kind)
	assert.Equal(t, CellGoto, res.Table.GotoCell(0, "E").Kind)
	assert.True(t, res.Table.GotoCell(4, "E").IsEmpty())
	assert.True(t, res.Table.ActionCell(99, "id").IsEmpty())
}

func TestDecodeFailedAnalysis(t *testing.T) {
	res, err := DecodeBytes([]byte(`{"success": false, "parsing_result": {"message": "grammar has errors"}}`))
	require.NoError(t, err)

	assert.False(t, res.Succeeded)
	assert.Equal(t, "grammar has errors", res.Message)
	assert.Nil(t, res.Table)
	assert.Nil(t, res.Trace)
	assert.Nil(t, res.Diagrams)
	assert.Equal(t, 0, res.ConflictCount())
}

func TestDecodeTrace(t *testing.T) {
	body := `{
	  "success": true,
	  "statistics": {"conflicts": {"4": {"+": {"type": "shift_reduce"}}, "6": {"*": {}, "+": {}}}},
	  "string_parsing": {
	    "input_string": "id",
	    "accepted": true,
	    "transitions": [
	      {"step": 1, "action": "shift 2", "stack": [0], "input": ["id", "$"], "symbol": "id"},
	      {"step": 2, "action": "reduce", "stack": [0, "id", 2], "input": "$", "rule_number": 2},
	      {"step": 3, "action": "accept", "stack": [0, "E", 1], "input": ["$"], "message": "done"}
	    ],
	    "final_state": {"stack": [0, "E", 1], "position": 1}
	  }
	}`
	res, err := DecodeBytes([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Statistics.ConflictCount)
	require.NotNil(t, res.Trace)
	require.Len(t, res.Trace.Steps, 3)

	assert.Equal(t, TagShift, res.Trace.Steps[0].Tag)
	assert.Equal(t, []string{"0"}, res.Trace.Steps[0].Stack)
	assert.Equal(t, "id", res.Trace.Steps[0].SymbolConsumed)
	assert.Equal(t, []string{"$"}, res.Trace.Steps[1].RemainingInput)
	assert.Equal(t, "R2", res.Trace.Steps[1].RuleUsed)
	assert.Equal(t, "done", res.Trace.Steps[2].Note)
	assert.Equal(t, []string{"0", "E", "1"}, res.Trace.Final.Stack)
	assert.Equal(t, 1, res.Trace.Final.Cursor)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"success": `))
	assert.Error(t, err)
}

func TestConflictCountDeduplicatesCoordinates(t *testing.T) {
	res := &AnalysisResult{
		Statistics: Statistics{ConflictCount: 7},
		Table: &ParseTable{Conflicts: []Conflict{
			{State: 4, Terminal: "+"},
			{State: 4, Terminal: "+"},
			{State: 5, Terminal: "+"},
		}},
	}
	assert.Equal(t, 2, res.ConflictCount())
}

func TestImageRefDecode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	ref := &ImageRef{
		Title:   "AFD",
		DataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	assert.Equal(t, "image/png", ref.MediaType())

	raw, err := ref.Bytes()
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), raw)

	decoded, err := ref.Decode()
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Bounds().Dx())
	assert.Equal(t, 2, decoded.Bounds().Dy())

	var empty *ImageRef
	_, err = empty.Bytes()
	assert.ErrorIs(t, err, ErrNoImageData)
}
