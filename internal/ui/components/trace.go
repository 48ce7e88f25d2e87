package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/theme"
)

// TraceRow is one rendered parser transition
type TraceRow struct {
	Index       int
	Action      string
	Tag         result.ActionTag
	Stack       string
	Input       string
	Annotations []string
}

// TraceSummary describes the final configuration of a trace
type TraceSummary struct {
	InputString string
	Accepted    bool
	FinalStack  string
	Cursor      int
	TotalSteps  int
}

// TraceView is the display model of a transition trace
type TraceView struct {
	Rows    []TraceRow
	Summary TraceSummary
	Notice  string
}

// BuildTrace lays out res.Trace in recorded order. Steps are never merged
// or reordered, and TotalSteps always equals the number of rows.
func BuildTrace(res *result.AnalysisResult) *TraceView {
	if res == nil || res.Trace == nil {
		return &TraceView{Notice: "No transition data to show."}
	}
	tr := res.Trace
	view := &TraceView{Rows: make([]TraceRow, 0, len(tr.Steps))}

	for _, step := range tr.Steps {
		tag := step.Tag
		if tag == "" {
			tag = result.ParseActionTag(step.Action)
		}
		view.Rows = append(view.Rows, TraceRow{
			Index:       step.Index,
			Action:      step.Action,
			Tag:         tag,
			Stack:       FormatStack(step.Stack),
			Input:       FormatInput(step.RemainingInput),
			Annotations: annotations(step),
		})
	}

	view.Summary = TraceSummary{
		InputString: tr.InputString,
		Accepted:    tr.Accepted,
		FinalStack:  FormatStack(tr.Final.Stack),
		Cursor:      tr.Final.Cursor,
		TotalSteps:  len(view.Rows),
	}
	return view
}

// FormatStack renders a stack snapshot as "[a b c]"
func FormatStack(stack []string) string {
	return "[" + strings.Join(stack, " ") + "]"
}

// FormatInput renders the remaining input symbols
func FormatInput(input []string) string {
	return strings.Join(input, " ")
}

func annotations(step result.TraceStep) []string {
	var out []string
	if step.RuleUsed != "" {
		out = append(out, "rule: "+step.RuleUsed)
	}
	if step.SymbolConsumed != "" {
		out = append(out, "symbol: "+step.SymbolConsumed)
	}
	if step.ErrorDetail != "" {
		out = append(out, "error: "+step.ErrorDetail)
	}
	if step.Note != "" {
		out = append(out, step.Note)
	}
	return out
}

// HasTrace reports whether there is a trace to draw
func (v *TraceView) HasTrace() bool {
	return v != nil && v.Notice == ""
}

// Render draws the step table followed by the summary
func (v *TraceView) Render(styles *theme.Styles) string {
	if !v.HasTrace() {
		return theme.Render(styles.Info, v.Notice)
	}

	header := v.renderHeader(styles)
	rows := make([][]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, []string{
			strconv.Itoa(row.Index),
			tagStyle(styles, row.Tag, row.Action),
			row.Stack,
			row.Input,
			strings.Join(row.Annotations, "; "),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Step", "Action", "Stack", "Input", "Details").
		Rows(rows...)

	return lipgloss.JoinVertical(lipgloss.Left, header, t.Render(), v.renderSummary(styles))
}

func (v *TraceView) renderHeader(styles *theme.Styles) string {
	verdict := theme.Render(styles.Success, "accepted")
	if !v.Summary.Accepted {
		verdict = theme.Render(styles.Error, "rejected")
	}
	return fmt.Sprintf("Input %q: %s", v.Summary.InputString, verdict)
}

func (v *TraceView) renderSummary(styles *theme.Styles) string {
	lines := []string{
		theme.Render(styles.Subheader, "Summary"),
		fmt.Sprintf("  Final stack:    %s", v.Summary.FinalStack),
		fmt.Sprintf("  Final position: %d", v.Summary.Cursor),
		fmt.Sprintf("  Total steps:    %d", v.Summary.TotalSteps),
	}
	return strings.Join(lines, "\n")
}

func tagStyle(styles *theme.Styles, tag result.ActionTag, text string) string {
	switch tag {
	case result.TagShift:
		return theme.Render(lipgloss.NewStyle().Foreground(styles.Theme.Shift), text)
	case result.TagReduce:
		return theme.Render(lipgloss.NewStyle().Foreground(styles.Theme.Reduce), text)
	case result.TagAccept:
		return theme.Render(styles.Success, text)
	case result.TagError:
		return theme.Render(styles.Error, text)
	default:
		return text
	}
}
