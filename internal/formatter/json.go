package formatter

import (
	"encoding/json"

	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/components"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(res *result.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(createReport(res), "", "  ")
}

// JSONReport is the machine-readable analysis report
type JSONReport struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Statistics *StatisticsOutput `json:"statistics"`
	Table      *TableOutput      `json:"table,omitempty"`
	Trace      *TraceOutput      `json:"trace,omitempty"`
	Diagrams   []DiagramOutput   `json:"diagrams"`
}

// StatisticsOutput represents the statistics section
type StatisticsOutput struct {
	NFAStates   int  `json:"nfa_states"`
	DFAStates   int  `json:"dfa_states"`
	Productions int  `json:"productions"`
	IsLR1       bool `json:"is_lr1"`
	Conflicts   int  `json:"conflicts"`
}

// TableOutput is the classified parse table
type TableOutput struct {
	ActionColumns []string         `json:"action_columns"`
	GotoColumns   []string         `json:"goto_columns"`
	Rows          []TableRowOutput `json:"rows"`
	Rules         []string         `json:"rules"`
	Conflicts     []ConflictOutput `json:"conflicts"`
}

// TableRowOutput is one state of the table
type TableRowOutput struct {
	State int          `json:"state"`
	Cells []CellOutput `json:"cells"`
}

// CellOutput is one classified, non-empty cell
type CellOutput struct {
	Section  string `json:"section"`
	Column   string `json:"column"`
	Value    string `json:"value"`
	Category string `json:"category"`
	Detail   string `json:"detail,omitempty"`
}

// ConflictOutput is one reported conflict
type ConflictOutput struct {
	State    int    `json:"state"`
	Terminal string `json:"terminal"`
	Kind     string `json:"kind"`
	Action1  string `json:"action1"`
	Action2  string `json:"action2"`
}

// TraceOutput represents the string-parsing trace
type TraceOutput struct {
	Input      string            `json:"input"`
	Accepted   bool              `json:"accepted"`
	Steps      []TraceStepOutput `json:"steps"`
	FinalStack []string          `json:"final_stack"`
	Position   int               `json:"position"`
	TotalSteps int               `json:"total_steps"`
}

// TraceStepOutput is one transition
type TraceStepOutput struct {
	Step    int      `json:"step"`
	Action  string   `json:"action"`
	Tag     string   `json:"tag"`
	Stack   []string `json:"stack"`
	Input   []string `json:"input"`
	Details []string `json:"details,omitempty"`
}

// DiagramOutput reports one automaton image without its payload
type DiagramOutput struct {
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	Available bool   `json:"available"`
	MediaType string `json:"media_type,omitempty"`
	Bytes     int    `json:"bytes,omitempty"`
}

func createReport(res *result.AnalysisResult) *JSONReport {
	if res == nil {
		res = &result.AnalysisResult{}
	}
	st := res.Statistics
	report := &JSONReport{
		Success: res.Succeeded,
		Message: res.Message,
		Statistics: &StatisticsOutput{
			NFAStates:   st.NFAStateCount,
			DFAStates:   st.DFAStateCount,
			Productions: st.ProductionCount,
			IsLR1:       st.IsLR1,
			Conflicts:   res.ConflictCount(),
		},
		Table:    createTableOutput(res),
		Trace:    createTraceOutput(res),
		Diagrams: createDiagramOutputs(res),
	}
	return report
}

func createTableOutput(res *result.AnalysisResult) *TableOutput {
	if res.Table == nil {
		return nil
	}
	view := components.BuildParseTable(res)
	out := &TableOutput{
		ActionColumns: nonNil(res.Table.ActionColumns),
		GotoColumns:   nonNil(res.Table.GotoColumns),
		Rows:          make([]TableRowOutput, 0, len(view.Rows)),
		Rules:         nonNil(res.Table.GrammarRules),
		Conflicts:     make([]ConflictOutput, 0, len(res.Table.Conflicts)),
	}
	for _, row := range view.Rows {
		r := TableRowOutput{State: row.State, Cells: []CellOutput{}}
		for _, cell := range row.Cells {
			if cell.Raw == "" && cell.Detail() == "" {
				continue
			}
			r.Cells = append(r.Cells, CellOutput{
				Section:  string(cell.Section),
				Column:   cell.Column,
				Value:    cell.Raw,
				Category: cell.Class.Category.String(),
				Detail:   cell.Detail(),
			})
		}
		out.Rows = append(out.Rows, r)
	}
	for _, c := range res.Table.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictOutput{
			State:    c.State,
			Terminal: c.Terminal,
			Kind:     string(c.Kind),
			Action1:  c.Action1,
			Action2:  c.Action2,
		})
	}
	return out
}

func createTraceOutput(res *result.AnalysisResult) *TraceOutput {
	tr := res.Trace
	if tr == nil {
		return nil
	}
	view := components.BuildTrace(res)
	out := &TraceOutput{
		Input:      tr.InputString,
		Accepted:   tr.Accepted,
		Steps:      make([]TraceStepOutput, 0, len(tr.Steps)),
		FinalStack: nonNil(tr.Final.Stack),
		Position:   tr.Final.Cursor,
		TotalSteps: view.Summary.TotalSteps,
	}
	for i, step := range tr.Steps {
		out.Steps = append(out.Steps, TraceStepOutput{
			Step:    step.Index,
			Action:  step.Action,
			Tag:     string(view.Rows[i].Tag),
			Stack:   nonNil(step.Stack),
			Input:   nonNil(step.RemainingInput),
			Details: view.Rows[i].Annotations,
		})
	}
	return out
}

func createDiagramOutputs(res *result.AnalysisResult) []DiagramOutput {
	var nfa, dfa *result.ImageRef
	if res.Diagrams != nil {
		nfa, dfa = res.Diagrams.NFA, res.Diagrams.DFA
	}
	return []DiagramOutput{diagramOutput("nfa", nfa), diagramOutput("dfa", dfa)}
}

func diagramOutput(name string, img *result.ImageRef) DiagramOutput {
	out := DiagramOutput{Name: name}
	if img == nil {
		return out
	}
	out.Title = img.Title
	if data, err := img.Bytes(); err == nil {
		out.Available = true
		out.MediaType = img.MediaType()
		out.Bytes = len(data)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
