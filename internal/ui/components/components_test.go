package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/lrview/internal/classifier"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/result/resulttest"
	"github.com/yildizm/lrview/internal/ui/theme"
)

func decode(t *testing.T, data []byte) *result.AnalysisResult {
	t.Helper()
	res, err := result.DecodeBytes(data)
	require.NoError(t, err)
	return res
}

func findCell(t *testing.T, view *ParseTableView, state int, column string) TableCell {
	t.Helper()
	for _, row := range view.Rows {
		if row.State != state {
			continue
		}
		for _, cell := range row.Cells {
			if cell.Column == column {
				return cell
			}
		}
	}
	t.Fatalf("no cell at state %d column %q", state, column)
	return TableCell{}
}

func TestBuildParseTableConflict(t *testing.T) {
	view := BuildParseTable(decode(t, resulttest.ConflictResponse()))
	require.True(t, view.HasTable())

	assert.Equal(t, []string{"id", "+", "$", "E"}, view.Columns)
	assert.Equal(t, 3, view.ActionCount)
	require.Len(t, view.Rows, 2)

	cell := findCell(t, view, 4, "+")
	assert.Equal(t, classifier.Conflict, cell.Class.Category)
	assert.Equal(t, "s7", cell.Text)
	assert.Equal(t, "shift-reduce conflict: s7 vs r3", cell.Detail())

	reduce := findCell(t, view, 4, "$")
	assert.Equal(t, classifier.Reduce, reduce.Class.Category)
	assert.Empty(t, reduce.Detail())

	gotoCell := findCell(t, view, 4, "E")
	assert.Equal(t, SectionGoto, gotoCell.Section)
	assert.Equal(t, EmptyGoto, gotoCell.Text)
	assert.Equal(t, classifier.Empty, gotoCell.Class.Category)

	assert.Equal(t, 1, view.ConflictCells())
	assert.Equal(t, []string{"R0: S -> E", "R1: E -> E + E", "R2: E -> id"}, view.Rules)
	require.Len(t, view.Conflicts, 1)
	assert.Equal(t, "state 4, terminal '+': shift-reduce conflict: s7 vs r3", view.Conflicts[0])
}

func TestBuildParseTableExpression(t *testing.T) {
	view := BuildParseTable(decode(t, resulttest.ExpressionResponse()))
	require.True(t, view.HasTable())

	states := make([]int, 0, len(view.Rows))
	for _, row := range view.Rows {
		states = append(states, row.State)
	}
	assert.Equal(t, []int{0, 1, 2, 5}, states)
	assert.Zero(t, view.ConflictCells())
	assert.Empty(t, view.Conflicts)

	assert.Equal(t, classifier.Accept, findCell(t, view, 1, "$").Class.Category)
	assert.Equal(t, classifier.Shift, findCell(t, view, 0, "id").Class.Category)
	assert.Equal(t, classifier.Goto, findCell(t, view, 0, "E").Class.Category)
	assert.Equal(t, classifier.Empty, findCell(t, view, 0, ")").Class.Category)
}

func TestBuildParseTableNotice(t *testing.T) {
	tests := []struct {
		name string
		res  *result.AnalysisResult
		want string
	}{
		{"nil result", nil, "No analysis has been run yet."},
		{"failed", &result.AnalysisResult{Message: "bad grammar"}, "did not succeed (bad grammar)"},
		{"no table", &result.AnalysisResult{Succeeded: true}, "returned no parse table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := BuildParseTable(tt.res)
			assert.False(t, view.HasTable())
			assert.Contains(t, view.Notice, tt.want)
			assert.Empty(t, view.Rows)
		})
	}
}

func TestLegend(t *testing.T) {
	legend := Legend()
	require.Len(t, legend, 6)
	seen := make(map[classifier.Category]bool)
	for _, e := range legend {
		assert.NotEmpty(t, e.Meaning)
		seen[e.Category] = true
	}
	assert.Len(t, seen, 6)
}

func TestConflictDetailUnknownKind(t *testing.T) {
	assert.Empty(t, ConflictDetail(nil))
	got := ConflictDetail(&result.Conflict{Action1: "r1", Action2: "r2"})
	assert.Equal(t, "unknown conflict: r1 vs r2", got)
}

func TestParseTableRenderPlain(t *testing.T) {
	theme.SetColorDisabled(true)
	defer theme.SetColorDisabled(false)

	view := BuildParseTable(decode(t, resulttest.ConflictResponse()))
	opts := DefaultTableRenderOptions()
	out := view.Render(theme.GetStyles(), opts)
	assert.Contains(t, out, "State")
	assert.Contains(t, out, "Legend")
	assert.Contains(t, out, "▸ Production rules (3)")
	assert.Contains(t, out, "▸ Conflict details (1)")
	assert.NotContains(t, out, "R1: E -> E + E")

	opts.ShowRules = true
	opts.ShowConflicts = true
	opts.CursorRow, opts.CursorCol = 1, 1
	out = view.Render(theme.GetStyles(), opts)
	assert.Contains(t, out, "R1: E -> E + E")
	assert.Contains(t, out, "state 4, action '+': conflict (shift-reduce conflict: s7 vs r3)")
}

func TestBuildTraceCounts(t *testing.T) {
	step := result.TraceStep{Index: 1, Action: "shift 2", Stack: []string{"0"}, RemainingInput: []string{"id", "$"}}
	tests := []struct {
		name  string
		steps []result.TraceStep
	}{
		{"zero", nil},
		{"one", []result.TraceStep{step}},
		{"many", []result.TraceStep{step, step, step}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &result.AnalysisResult{Succeeded: true, Trace: &result.TransitionTrace{Steps: tt.steps}}
			view := BuildTrace(res)
			assert.True(t, view.HasTrace())
			assert.Len(t, view.Rows, len(tt.steps))
			assert.Equal(t, len(tt.steps), view.Summary.TotalSteps)
		})
	}
}

func TestBuildTraceExpression(t *testing.T) {
	view := BuildTrace(decode(t, resulttest.ExpressionResponse()))
	require.Len(t, view.Rows, 4)

	assert.Equal(t, result.TagShift, view.Rows[0].Tag)
	assert.Equal(t, "[0]", view.Rows[0].Stack)
	assert.Equal(t, "id + id * id $", view.Rows[0].Input)
	assert.Contains(t, view.Rows[1].Annotations, "rule: F -> id")
	assert.Equal(t, result.TagAccept, view.Rows[3].Tag)

	assert.True(t, view.Summary.Accepted)
	assert.Equal(t, "[0 E 1]", view.Summary.FinalStack)
	assert.Equal(t, 5, view.Summary.Cursor)
	assert.Equal(t, resulttest.ExpressionInput, view.Summary.InputString)
}

func TestBuildTraceNotice(t *testing.T) {
	view := BuildTrace(decode(t, resulttest.ConflictResponse()))
	assert.False(t, view.HasTrace())
	assert.Equal(t, "No transition data to show.", view.Notice)

	theme.SetColorDisabled(true)
	defer theme.SetColorDisabled(false)
	assert.Equal(t, "No transition data to show.", view.Render(theme.GetStyles()))
}

func TestFormatStack(t *testing.T) {
	assert.Equal(t, "[]", FormatStack(nil))
	assert.Equal(t, "[0 id 5]", FormatStack([]string{"0", "id", "5"}))
	assert.Equal(t, "", FormatInput(nil))
}

func TestCreateResultStats(t *testing.T) {
	dashboard := CreateResultStats(decode(t, resulttest.ConflictResponse()))
	cards := dashboard.Cards()
	require.Len(t, cards, 5)

	values := make(map[string]string)
	statuses := make(map[string]string)
	for _, c := range cards {
		values[c.Title] = c.Value
		statuses[c.Title] = c.Status
	}
	assert.Equal(t, "10", values["NFA states"])
	assert.Equal(t, "8", values["DFA states"])
	assert.Equal(t, "3", values["Productions"])
	assert.Equal(t, "no", values["LR(1)"])
	assert.Equal(t, "1", values["Conflicts"])
	assert.Equal(t, "warning", statuses["Conflicts"])

	withTrace := CreateResultStats(decode(t, resulttest.ExpressionResponse()))
	assert.Len(t, withTrace.Cards(), 6)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}

func TestDiagramList(t *testing.T) {
	list := NewDiagramList(decode(t, resulttest.ExpressionResponse()), 40, 10)
	require.Equal(t, 2, list.Len())
	item := list.GetSelectedItem()
	require.NotNil(t, item)
	assert.Equal(t, "nfa", item.ID)
	assert.False(t, item.Disabled)

	list.MoveDown()
	list.MoveDown()
	assert.Equal(t, "dfa", list.GetSelectedItem().ID)
	choice, ok := list.GetSelectedItem().Data.(DiagramChoice)
	require.True(t, ok)
	require.NotNil(t, choice.Image)
	assert.Equal(t, "AFD", choice.Image.Title)

	empty := NewDiagramList(decode(t, resulttest.ConflictResponse()), 40, 10)
	for _, it := range empty.Items {
		assert.True(t, it.Disabled, it.ID)
	}

	list.SetSearch("canonical")
	assert.Equal(t, 1, list.Len())
	assert.True(t, strings.HasPrefix(list.GetSelectedItem().Title, "DFA"))
}
