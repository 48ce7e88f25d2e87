package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Response is the JSON body returned by the analysis service
type Response struct {
	Success        bool                `json:"success"`
	ParsingResult  *wireParsingResult  `json:"parsing_result"`
	Statistics     wireStatistics      `json:"statistics"`
	Visualizations *wireVisualizations `json:"visualizations"`
	StringParsing  *wireStringParsing  `json:"string_parsing"`
}

type wireParsingResult struct {
	Message string `json:"message"`
}

type wireStatistics struct {
	NumStatesAFN   flexInt       `json:"num_states_afn"`
	NumStatesAFD   flexInt       `json:"num_states_afd"`
	NumProductions flexInt       `json:"num_productions"`
	IsLR1          bool          `json:"is_lr1"`
	Conflicts      conflictCount `json:"conflicts"`
}

type wireVisualizations struct {
	ImagesAvailable bool           `json:"images_available"`
	AFNImage        *string        `json:"afn_image"`
	AFDImage        *string        `json:"afd_image"`
	TableData       *wireTableData `json:"table_data"`
}

type wireTableData struct {
	Table        wireTable      `json:"table"`
	GrammarRules []string       `json:"grammar_rules"`
	Conflicts    []wireConflict `json:"conflicts"`
}

type wireTable struct {
	Headers struct {
		Action []string `json:"action"`
		Goto   []string `json:"goto"`
	} `json:"headers"`
	Rows []wireRow `json:"rows"`
}

type wireRow struct {
	State  flexInt         `json:"state"`
	Action map[string]Cell `json:"action"`
	Goto   map[string]Cell `json:"goto"`
}

type wireConflict struct {
	State    flexInt    `json:"state"`
	Terminal string     `json:"terminal"`
	Type     string     `json:"type"`
	Action1  actionText `json:"action1"`
	Action2  actionText `json:"action2"`
}

type wireStringParsing struct {
	InputString string     `json:"input_string"`
	Accepted    bool       `json:"accepted"`
	Transitions []wireStep `json:"transitions"`
	FinalState  *struct {
		Stack    symbols `json:"stack"`
		Position flexInt `json:"position"`
	} `json:"final_state"`
}

type wireStep struct {
	Step       flexInt  `json:"step"`
	Action     flexText `json:"action"`
	Stack      symbols  `json:"stack"`
	Input      symbols  `json:"input"`
	Symbol     flexText `json:"symbol"`
	Rule       flexText `json:"rule"`
	RuleNumber *flexInt `json:"rule_number"`
	Message    flexText `json:"message"`
	Error      flexText `json:"error"`
}

// Decode reads a service response body and converts it to an AnalysisResult
func Decode(r io.Reader) (*AnalysisResult, error) {
	var resp Response
	dec := json.NewDecoder(r)
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	return resp.ToResult(), nil
}

// DecodeBytes is Decode over an in-memory body
func DecodeBytes(data []byte) (*AnalysisResult, error) {
	return Decode(bytes.NewReader(data))
}

// ToResult maps the wire shape onto the domain model. Sections the service
// did not send stay nil.
func (resp *Response) ToResult() *AnalysisResult {
	res := &AnalysisResult{
		Succeeded: resp.Success,
		Statistics: Statistics{
			NFAStateCount:   int(resp.Statistics.NumStatesAFN),
			DFAStateCount:   int(resp.Statistics.NumStatesAFD),
			ProductionCount: int(resp.Statistics.NumProductions),
			IsLR1:           resp.Statistics.IsLR1,
			ConflictCount:   int(resp.Statistics.Conflicts),
		},
	}
	if resp.ParsingResult != nil {
		res.Message = resp.ParsingResult.Message
	}

	if v := resp.Visualizations; v != nil {
		if v.TableData != nil {
			res.Table = v.TableData.toTable()
		}
		res.Diagrams = v.toDiagrams()
	}
	if resp.StringParsing != nil {
		res.Trace = resp.StringParsing.toTrace()
	}
	return res
}

func (td *wireTableData) toTable() *ParseTable {
	t := &ParseTable{
		StateIDs:      make([]int, 0, len(td.Table.Rows)),
		ActionColumns: append([]string(nil), td.Table.Headers.Action...),
		GotoColumns:   append([]string(nil), td.Table.Headers.Goto...),
		Rows:          make(map[int]Row, len(td.Table.Rows)),
		GrammarRules:  append([]string(nil), td.GrammarRules...),
	}
	for _, wr := range td.Table.Rows {
		state := int(wr.State)
		if _, dup := t.Rows[state]; !dup {
			t.StateIDs = append(t.StateIDs, state)
		}
		row := Row{Action: wr.Action, Goto: wr.Goto}
		if row.Action == nil {
			row.Action = map[string]Cell{}
		}
		if row.Goto == nil {
			row.Goto = map[string]Cell{}
		}
		t.Rows[state] = row
	}
	for _, wc := range td.Conflicts {
		t.Conflicts = append(t.Conflicts, Conflict{
			State:    int(wc.State),
			Terminal: wc.Terminal,
			Kind:     normalizeKind(wc.Type, string(wc.Action1), string(wc.Action2)),
			Action1:  string(wc.Action1),
			Action2:  string(wc.Action2),
		})
	}
	return t
}

func (v *wireVisualizations) toDiagrams() *Diagrams {
	d := &Diagrams{}
	if v.AFNImage != nil && strings.TrimSpace(*v.AFNImage) != "" {
		d.NFA = &ImageRef{Title: "AFN", DataURI: *v.AFNImage}
	}
	if v.AFDImage != nil && strings.TrimSpace(*v.AFDImage) != "" {
		d.DFA = &ImageRef{Title: "AFD", DataURI: *v.AFDImage}
	}
	if d.NFA == nil && d.DFA == nil {
		return nil
	}
	return d
}

func (sp *wireStringParsing) toTrace() *TransitionTrace {
	tr := &TransitionTrace{
		InputString: sp.InputString,
		Accepted:    sp.Accepted,
		Steps:       make([]TraceStep, 0, len(sp.Transitions)),
	}
	for i, ws := range sp.Transitions {
		idx := int(ws.Step)
		if idx == 0 {
			idx = i + 1
		}
		rule := string(ws.Rule)
		if rule == "" && ws.RuleNumber != nil {
			rule = "R" + strconv.Itoa(int(*ws.RuleNumber))
		}
		tr.Steps = append(tr.Steps, TraceStep{
			Index:          idx,
			Action:         string(ws.Action),
			Tag:            ParseActionTag(string(ws.Action)),
			Stack:          []string(ws.Stack),
			RemainingInput: []string(ws.Input),
			RuleUsed:       rule,
			SymbolConsumed: string(ws.Symbol),
			ErrorDetail:    string(ws.Error),
			Note:           string(ws.Message),
		})
	}
	if sp.FinalState != nil {
		tr.Final = FinalConfiguration{
			Stack:  []string(sp.FinalState.Stack),
			Cursor: int(sp.FinalState.Position),
		}
	}
	return tr
}

func normalizeKind(raw, a1, a2 string) ConflictKind {
	k := strings.ToLower(strings.TrimSpace(raw))
	k = strings.NewReplacer("_", "-", " ", "-", "/", "-").Replace(k)
	switch k {
	case "shift-reduce", "sr":
		return ConflictShiftReduce
	case "reduce-reduce", "rr":
		return ConflictReduceReduce
	}
	c1, c2 := ParseCell(a1), ParseCell(a2)
	switch {
	case c1.Kind == CellReduce && c2.Kind == CellReduce:
		return ConflictReduceReduce
	case (c1.Kind == CellShift && c2.Kind == CellReduce) || (c1.Kind == CellReduce && c2.Kind == CellShift):
		return ConflictShiftReduce
	}
	return ConflictUnknown
}

// flexString renders a JSON scalar as text. null becomes "".
func flexString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", truncate(data))
	default:
		// numbers and booleans keep their literal text
		return string(data), nil
	}
}

type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	s, err := flexString(data)
	if err != nil {
		return err
	}
	*t = flexText(s)
	return nil
}

type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s, err := flexString(data)
	if err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("expected integer, got %q", s)
	}
	*n = flexInt(int(f))
	return nil
}

// symbols is a list of grammar symbols or state numbers. A plain string is
// split on whitespace.
type symbols []string

func (s *symbols) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] != '[' {
		str, err := flexString(data)
		if err != nil {
			return err
		}
		*s = strings.Fields(str)
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		str, err := flexString(item)
		if err != nil {
			return err
		}
		out = append(out, str)
	}
	*s = out
	return nil
}

// actionText is a conflict action. Tuples such as ["shift", 7] are written
// in table notation ("s7", "r3", "acc").
type actionText string

func (a *actionText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		s, err := flexString(data)
		if err != nil {
			return err
		}
		*a = actionText(s)
		return nil
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) == 0 {
		*a = ""
		return nil
	}
	kind, err := flexString(parts[0])
	if err != nil {
		return err
	}
	var target string
	if len(parts) > 1 {
		if target, err = flexString(parts[1]); err != nil {
			return err
		}
	}
	switch strings.ToLower(kind) {
	case "shift", "s":
		*a = actionText("s" + target)
	case "reduce", "r":
		*a = actionText("r" + target)
	case "accept", "acc":
		*a = "acc"
	default:
		*a = actionText(strings.TrimSpace(kind + " " + target))
	}
	return nil
}

// conflictCount accepts a plain count or a nested {state: {terminal: ...}}
// mapping, which is counted by leaf coordinates.
type conflictCount int

func (c *conflictCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*c = conflictCount(len(items))
		return nil
	case '{':
		var byState map[string]json.RawMessage
		if err := json.Unmarshal(data, &byState); err != nil {
			return err
		}
		total := 0
		for _, entry := range byState {
			var byTerminal map[string]json.RawMessage
			if err := json.Unmarshal(entry, &byTerminal); err != nil {
				total++
				continue
			}
			total += len(byTerminal)
		}
		*c = conflictCount(total)
		return nil
	}
	var n flexInt
	if err := n.UnmarshalJSON(data); err != nil {
		return err
	}
	*c = conflictCount(n)
	return nil
}

func truncate(data []byte) string {
	const limit = 32
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
