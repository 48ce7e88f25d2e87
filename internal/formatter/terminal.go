package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/components"
	"github.com/yildizm/lrview/internal/ui/theme"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(res *result.AnalysisResult) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}
	var b strings.Builder

	f.writeHeader(&b)
	f.writeStatus(&b, res)
	f.writeStatistics(&b, res)

	styles := theme.GetStyles()
	table := components.BuildParseTable(res)
	f.writeTable(&b, table, styles)

	if res.Trace != nil {
		f.writeTrace(&b, components.BuildTrace(res), styles)
	}
	f.writeDiagrams(&b, res)

	return []byte(b.String()), nil
}

// writeHeader writes a header with box drawing
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "LR(1) Analysis Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

func (f *terminalFormatter) writeStatus(b *strings.Builder, res *result.AnalysisResult) {
	symbol := emojiOr("success", "[OK]", f.opts)
	if !res.Succeeded {
		symbol = emojiOr("error", "[ERR]", f.opts)
	}
	fmt.Fprintf(b, "%s Analysis %s", symbol, analysisStatus(res))
	if res.Message != "" {
		fmt.Fprintf(b, ": %s", res.Message)
	}
	b.WriteString("\n\n")
}

// writeStatistics writes statistics with tree-style formatting using go-termfmt
func (f *terminalFormatter) writeStatistics(b *strings.Builder, res *result.AnalysisResult) {
	b.WriteString(emojiOr("statistics", "[STATS]", f.opts) + " Statistics\n")

	st := res.Statistics
	items := []termfmt.TreeItem{
		{Label: "NFA states", Value: formatNumber(st.NFAStateCount)},
		{Label: "DFA states", Value: formatNumber(st.DFAStateCount)},
		{Label: "Productions", Value: formatNumber(st.ProductionCount)},
		{Label: "LR(1)", Value: yesNo(st.IsLR1)},
		{Label: "Conflicts", Value: formatNumber(res.ConflictCount()), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeTable(b *strings.Builder, view *components.ParseTableView, styles *theme.Styles) {
	b.WriteString(emojiOr("table", "[TBL]", f.opts) + " Parse Table\n")
	if !view.HasTable() {
		b.WriteString(view.Notice + "\n\n")
		return
	}

	opts := components.DefaultTableRenderOptions()
	opts.ShowRules = true
	opts.ShowConflicts = true
	b.WriteString(view.Render(styles, opts) + "\n")

	density := tableDensity(view)
	fmt.Fprintf(b, "Action density %s %.0f%%\n\n", termfmt.CreateConfidenceBar(density, f.opts), density*100)
}

func (f *terminalFormatter) writeTrace(b *strings.Builder, view *components.TraceView, styles *theme.Styles) {
	b.WriteString(emojiOr("trace", "[TRC]", f.opts) + " Transitions\n")
	b.WriteString(view.Render(styles) + "\n\n")
}

// writeDiagrams lists which automaton images came back
func (f *terminalFormatter) writeDiagrams(b *strings.Builder, res *result.AnalysisResult) {
	b.WriteString(emojiOr("diagram", "[IMG]", f.opts) + " Diagrams\n")

	var nfa, dfa *result.ImageRef
	if res.Diagrams != nil {
		nfa, dfa = res.Diagrams.NFA, res.Diagrams.DFA
	}
	items := []termfmt.TreeItem{
		{Label: "NFA", Value: imageSummary(nfa)},
		{Label: "DFA", Value: imageSummary(dfa), Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func imageSummary(img *result.ImageRef) string {
	if img == nil {
		return "not available"
	}
	data, err := img.Bytes()
	if err != nil {
		return "unreadable: " + err.Error()
	}
	return fmt.Sprintf("%s, %s bytes", img.MediaType(), formatNumber(len(data)))
}
