package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/components"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(res *result.AnalysisResult) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}
	var b strings.Builder

	b.WriteString("# LR(1) Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	f.writeTableOfContents(&b, res)
	f.writeSummaryTable(&b, res)
	f.writeParseTable(&b, components.BuildParseTable(res))
	if res.Trace != nil {
		f.writeTrace(&b, components.BuildTrace(res))
	}
	f.writeDiagrams(&b, res)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, res *result.AnalysisResult) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")
	b.WriteString("- [Parse Table](#parse-table)\n")
	if res.Trace != nil {
		b.WriteString("- [Transitions](#transitions)\n")
	}
	b.WriteString("- [Diagrams](#diagrams)\n\n")
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, res *result.AnalysisResult) {
	st := res.Statistics
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Status | %s |\n", analysisStatus(res))
	if res.Message != "" {
		fmt.Fprintf(b, "| Message | %s |\n", escapeMarkdown(res.Message))
	}
	fmt.Fprintf(b, "| NFA states | %s |\n", formatNumber(st.NFAStateCount))
	fmt.Fprintf(b, "| DFA states | %s |\n", formatNumber(st.DFAStateCount))
	fmt.Fprintf(b, "| Productions | %s |\n", formatNumber(st.ProductionCount))
	fmt.Fprintf(b, "| LR(1) | %s |\n", yesNo(st.IsLR1))
	fmt.Fprintf(b, "| Conflicts | %s |\n\n", formatNumber(res.ConflictCount()))
}

func (f *markdownFormatter) writeParseTable(b *strings.Builder, view *components.ParseTableView) {
	b.WriteString("## Parse Table\n\n")
	if !view.HasTable() {
		b.WriteString("_" + view.Notice + "_\n\n")
		return
	}

	header := make([]string, 0, len(view.Columns)+1)
	header = append(header, "State")
	for _, col := range view.Columns {
		header = append(header, "`"+escapeMarkdown(col)+"`")
	}
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")

	for _, row := range view.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, fmt.Sprintf("%d", row.State))
		for _, cell := range row.Cells {
			text := escapeMarkdown(cell.Text)
			if cell.Detail() != "" {
				text = "**" + text + "** ⚠"
			}
			cells = append(cells, text)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")

	if len(view.Rules) > 0 {
		b.WriteString("### Production Rules\n\n")
		for _, rule := range view.Rules {
			fmt.Fprintf(b, "- `%s`\n", rule)
		}
		b.WriteString("\n")
	}

	if len(view.Conflicts) > 0 {
		b.WriteString("### Conflicts\n\n")
		for _, c := range view.Conflicts {
			fmt.Fprintf(b, "- %s\n", escapeMarkdown(c))
		}
		b.WriteString("\n")
	}
}

func (f *markdownFormatter) writeTrace(b *strings.Builder, view *components.TraceView) {
	b.WriteString("## Transitions\n\n")
	fmt.Fprintf(b, "Input `%s` was **%s**.\n\n", view.Summary.InputString, verdictWord(view.Summary.Accepted))

	b.WriteString("| Step | Action | Stack | Input | Details |\n")
	b.WriteString("|------|--------|-------|-------|---------|\n")
	for _, row := range view.Rows {
		fmt.Fprintf(b, "| %d | %s | `%s` | `%s` | %s |\n",
			row.Index, escapeMarkdown(row.Action), row.Stack, row.Input,
			escapeMarkdown(strings.Join(row.Annotations, "; ")))
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "- **Final stack:** `%s`\n", view.Summary.FinalStack)
	fmt.Fprintf(b, "- **Final position:** %d\n", view.Summary.Cursor)
	fmt.Fprintf(b, "- **Total steps:** %d\n\n", view.Summary.TotalSteps)
}

func (f *markdownFormatter) writeDiagrams(b *strings.Builder, res *result.AnalysisResult) {
	b.WriteString("## Diagrams\n\n")
	for _, d := range createDiagramOutputs(res) {
		status := "not available"
		if d.Available {
			status = fmt.Sprintf("%s (%s bytes)", d.MediaType, formatNumber(d.Bytes))
		}
		fmt.Fprintf(b, "- **%s**: %s\n", strings.ToUpper(d.Name), status)
	}
}

func verdictWord(accepted bool) string {
	if accepted {
		return "accepted"
	}
	return "rejected"
}

// escapeMarkdown keeps grammar symbols such as | from breaking table rows
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
