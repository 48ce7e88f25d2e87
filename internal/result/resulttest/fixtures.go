// Package resulttest provides canned analysis responses for tests.
package resulttest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
)

// ExpressionGrammar is the classic expression grammar
const ExpressionGrammar = `S -> E
E -> E + T
E -> T
T -> T * F
T -> F
F -> ( E )
F -> id`

// ExpressionInput is accepted by ExpressionGrammar
const ExpressionInput = "id + id * id"

// PNG returns a w x h opaque PNG
func PNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// DataURI wraps data as a PNG data URI
func DataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// ExpressionResponse is a successful, conflict-free analysis of
// ExpressionGrammar with a short accepted trace and both diagrams.
func ExpressionResponse() []byte {
	img := DataURI(PNG(8, 6))
	return mustJSON(map[string]any{
		"success":        true,
		"parsing_result": map[string]any{"message": "Parser construido exitosamente", "accepted": true, "conflicts": 0},
		"statistics": map[string]any{
			"num_states_afn": 20, "num_states_afd": 12, "num_productions": 7,
			"is_lr1": true, "conflicts": 0,
		},
		"visualizations": map[string]any{
			"images_available": true,
			"afn_image":        img,
			"afd_image":        img,
			"table_data": map[string]any{
				"table": map[string]any{
					"headers": map[string]any{
						"action": []string{"id", "+", "*", "(", ")", "$"},
						"goto":   []string{"E", "T", "F"},
					},
					"rows": []any{
						map[string]any{"state": 0, "action": map[string]any{"id": "s5", "(": "s4"}, "goto": map[string]any{"E": 1, "T": 2, "F": 3}},
						map[string]any{"state": 1, "action": map[string]any{"+": "s6", "$": "acc"}, "goto": map[string]any{}},
						map[string]any{"state": 2, "action": map[string]any{"+": "r2", "*": "s7", "$": "r2"}, "goto": map[string]any{}},
						map[string]any{"state": 5, "action": map[string]any{"+": "r6", "*": "r6", "$": "r6"}, "goto": map[string]any{}},
					},
				},
				"grammar_rules": []string{"S -> E", "E -> E + T", "E -> T", "T -> T * F", "T -> F", "F -> ( E )", "F -> id"},
				"conflicts":     []any{},
			},
		},
		"string_parsing": map[string]any{
			"input_string": ExpressionInput,
			"accepted":     true,
			"transitions": []any{
				map[string]any{"step": 1, "action": "shift 5", "stack": []any{0}, "input": []string{"id", "+", "id", "*", "id", "$"}, "symbol": "id"},
				map[string]any{"step": 2, "action": "reduce F -> id", "stack": []any{0, "id", 5}, "input": []string{"+", "id", "*", "id", "$"}, "rule": "F -> id"},
				map[string]any{"step": 3, "action": "reduce T -> F", "stack": []any{0, "F", 3}, "input": []string{"+", "id", "*", "id", "$"}, "rule": "T -> F"},
				map[string]any{"step": 4, "action": "accept", "stack": []any{0, "E", 1}, "input": []string{"$"}, "message": "cadena aceptada"},
			},
			"final_state": map[string]any{"stack": []any{0, "E", 1}, "position": 5},
		},
	})
}

// ConflictResponse has one shift-reduce conflict at state 4 on "+"
func ConflictResponse() []byte {
	return mustJSON(map[string]any{
		"success":        true,
		"parsing_result": map[string]any{"message": "Parser construido con conflictos"},
		"statistics": map[string]any{
			"num_states_afn": 10, "num_states_afd": 8, "num_productions": 3,
			"is_lr1": false, "conflicts": 1,
		},
		"visualizations": map[string]any{
			"images_available": false,
			"table_data": map[string]any{
				"table": map[string]any{
					"headers": map[string]any{"action": []string{"id", "+", "$"}, "goto": []string{"E"}},
					"rows": []any{
						map[string]any{"state": 0, "action": map[string]any{"id": "s2"}, "goto": map[string]any{"E": 1}},
						map[string]any{"state": 4, "action": map[string]any{"+": "s7", "$": "r3"}, "goto": map[string]any{"E": nil}},
					},
				},
				"grammar_rules": []string{"S -> E", "E -> E + E", "E -> id"},
				"conflicts": []any{
					map[string]any{"state": 4, "terminal": "+", "type": "shift_reduce", "action1": []any{"shift", 7}, "action2": []any{"reduce", 3}},
				},
			},
		},
	})
}

// FailedResponse reports an unsuccessful analysis with no data sections
func FailedResponse() []byte {
	return mustJSON(map[string]any{
		"success":        false,
		"parsing_result": map[string]any{"message": "gramática inválida"},
		"statistics":     map[string]any{},
	})
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
