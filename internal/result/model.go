// Package result holds the typed shape of an LR(1) analysis response.
//
// Values in this package are produced once by Decode and are read-only
// afterwards: renderers and viewers receive them but never mutate them.
package result

// AnalysisResult is the root of an analysis response
type AnalysisResult struct {
	Succeeded  bool             `json:"succeeded"`
	Message    string           `json:"message"`
	Statistics Statistics       `json:"statistics"`
	Table      *ParseTable      `json:"table,omitempty"`
	Trace      *TransitionTrace `json:"trace,omitempty"`
	Diagrams   *Diagrams        `json:"diagrams,omitempty"`
}

// Statistics summarizes the automata built by the service
type Statistics struct {
	NFAStateCount   int  `json:"nfa_state_count"`
	DFAStateCount   int  `json:"dfa_state_count"`
	ProductionCount int  `json:"production_count"`
	IsLR1           bool `json:"is_lr1"`
	ConflictCount   int  `json:"conflict_count"`
}

// ParseTable is the LR(1) action/goto table
type ParseTable struct {
	StateIDs      []int       `json:"state_ids"`
	ActionColumns []string    `json:"action_columns"`
	GotoColumns   []string    `json:"goto_columns"`
	Rows          map[int]Row `json:"rows"`
	GrammarRules  []string    `json:"grammar_rules"`
	Conflicts     []Conflict  `json:"conflicts"`
}

// Row holds the action and goto cells of one state
type Row struct {
	Action map[string]Cell `json:"action"`
	Goto   map[string]Cell `json:"goto"`
}

// ActionCell returns the action cell at (state, terminal). Missing rows and
// columns yield an empty cell.
func (t *ParseTable) ActionCell(state int, terminal string) Cell {
	if t == nil {
		return Cell{}
	}
	row, ok := t.Rows[state]
	if !ok {
		return Cell{}
	}
	return row.Action[terminal]
}

// GotoCell returns the goto cell at (state, nonterminal)
func (t *ParseTable) GotoCell(state int, nonterminal string) Cell {
	if t == nil {
		return Cell{}
	}
	row, ok := t.Rows[state]
	if !ok {
		return Cell{}
	}
	return row.Goto[nonterminal]
}

// Rule returns grammar rule i, or false when i is out of range
func (t *ParseTable) Rule(i int) (string, bool) {
	if t == nil || i < 0 || i >= len(t.GrammarRules) {
		return "", false
	}
	return t.GrammarRules[i], true
}

// ConflictKind names the two competing action types
type ConflictKind string

const (
	ConflictShiftReduce  ConflictKind = "shift-reduce"
	ConflictReduceReduce ConflictKind = "reduce-reduce"
	ConflictUnknown      ConflictKind = "unknown"
)

// Conflict records two competing actions at one (state, terminal) coordinate
type Conflict struct {
	State    int          `json:"state"`
	Terminal string       `json:"terminal"`
	Kind     ConflictKind `json:"kind"`
	Action1  string       `json:"action1"`
	Action2  string       `json:"action2"`
}

// TransitionTrace is the replay log of parsing the input string
type TransitionTrace struct {
	InputString string             `json:"input_string"`
	Accepted    bool               `json:"accepted"`
	Steps       []TraceStep        `json:"steps"`
	Final       FinalConfiguration `json:"final"`
}

// FinalConfiguration is the parser configuration after the last step
type FinalConfiguration struct {
	Stack  []string `json:"stack"`
	Cursor int      `json:"cursor"`
}

// TraceStep is one recorded parser transition
type TraceStep struct {
	Index          int       `json:"index"`
	Action         string    `json:"action"`
	Tag            ActionTag `json:"tag"`
	Stack          []string  `json:"stack"`
	RemainingInput []string  `json:"remaining_input"`
	RuleUsed       string    `json:"rule_used,omitempty"`
	SymbolConsumed string    `json:"symbol_consumed,omitempty"`
	ErrorDetail    string    `json:"error_detail,omitempty"`
	Note           string    `json:"note,omitempty"`
}

// Diagrams holds the rendered automaton images
type Diagrams struct {
	NFA *ImageRef `json:"nfa,omitempty"`
	DFA *ImageRef `json:"dfa,omitempty"`
}

// ConflictCount is the number shown wherever the result reports conflicts.
// When the table carries conflict records the distinct coordinates are
// counted; otherwise the service statistic is used.
func (r *AnalysisResult) ConflictCount() int {
	if r == nil {
		return 0
	}
	if r.Table != nil && len(r.Table.Conflicts) > 0 {
		seen := make(map[Coordinate]struct{}, len(r.Table.Conflicts))
		for _, c := range r.Table.Conflicts {
			seen[c.Coordinate()] = struct{}{}
		}
		return len(seen)
	}
	return r.Statistics.ConflictCount
}

// HasConflicts reports whether any conflict is known for this result
func (r *AnalysisResult) HasConflicts() bool {
	return r.ConflictCount() > 0
}

// Coordinate addresses one action cell
type Coordinate struct {
	State    int
	Terminal string
}

// Coordinate returns the cell coordinate the conflict belongs to
func (c Conflict) Coordinate() Coordinate {
	return Coordinate{State: c.State, Terminal: c.Terminal}
}
