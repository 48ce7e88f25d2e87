package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yildizm/lrview/internal/classifier"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/theme"
)

// EmptyGoto marks a goto cell with no target
const EmptyGoto = "—"

// Section names the half of the table a column belongs to
type Section string

const (
	SectionAction Section = "action"
	SectionGoto   Section = "goto"
)

// TableCell is one rendered cell of the parse table
type TableCell struct {
	Section Section
	Column  string
	Raw     string
	Text    string
	Class   classifier.Classification
}

// Detail is the on-demand conflict description, "" for ordinary cells
func (c TableCell) Detail() string {
	return ConflictDetail(c.Class.Conflict)
}

// TableRow is one state of the parse table
type TableRow struct {
	State int
	Cells []TableCell
}

// LegendEntry explains one cell category
type LegendEntry struct {
	Category classifier.Category
	Label    string
	Meaning  string
}

// ParseTableView is the display model of a parse table
type ParseTableView struct {
	Columns     []string
	ActionCount int
	Rows        []TableRow
	Legend      []LegendEntry
	Rules       []string
	Conflicts   []string
	Notice      string
}

// BuildParseTable lays out res.Table for display. Without a table the view
// carries only a notice.
func BuildParseTable(res *result.AnalysisResult) *ParseTableView {
	view := &ParseTableView{Legend: Legend()}
	if res == nil || res.Table == nil {
		view.Notice = tableNotice(res)
		return view
	}

	t := res.Table
	index := classifier.NewIndex(t.Conflicts)

	view.ActionCount = len(t.ActionColumns)
	view.Columns = make([]string, 0, len(t.ActionColumns)+len(t.GotoColumns))
	view.Columns = append(view.Columns, t.ActionColumns...)
	view.Columns = append(view.Columns, t.GotoColumns...)

	for _, state := range t.StateIDs {
		row := TableRow{State: state, Cells: make([]TableCell, 0, len(view.Columns))}
		for _, terminal := range t.ActionColumns {
			cell := t.ActionCell(state, terminal)
			row.Cells = append(row.Cells, TableCell{
				Section: SectionAction,
				Column:  terminal,
				Raw:     cell.Raw,
				Text:    cell.Raw,
				Class:   classifier.Classify(cell, state, terminal, index),
			})
		}
		for _, nonterminal := range t.GotoColumns {
			cell := t.GotoCell(state, nonterminal)
			text := cell.Raw
			if strings.TrimSpace(text) == "" {
				text = EmptyGoto
			}
			row.Cells = append(row.Cells, TableCell{
				Section: SectionGoto,
				Column:  nonterminal,
				Raw:     cell.Raw,
				Text:    text,
				Class:   classifier.ClassifyGoto(cell),
			})
		}
		view.Rows = append(view.Rows, row)
	}

	for i, rule := range t.GrammarRules {
		view.Rules = append(view.Rules, fmt.Sprintf("R%d: %s", i, rule))
	}
	for i := range t.Conflicts {
		c := &t.Conflicts[i]
		view.Conflicts = append(view.Conflicts,
			fmt.Sprintf("state %d, terminal '%s': %s", c.State, c.Terminal, ConflictDetail(c)))
	}
	return view
}

// Legend lists every cell category with its meaning
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(classifier.Categories))
	for _, c := range classifier.Categories {
		entries = append(entries, LegendEntry{Category: c, Label: c.String(), Meaning: c.Meaning()})
	}
	return entries
}

// ConflictDetail describes a conflict as "shift-reduce conflict: s7 vs r3"
func ConflictDetail(c *result.Conflict) string {
	if c == nil {
		return ""
	}
	kind := string(c.Kind)
	if kind == "" {
		kind = string(result.ConflictUnknown)
	}
	return fmt.Sprintf("%s conflict: %s vs %s", kind, c.Action1, c.Action2)
}

func tableNotice(res *result.AnalysisResult) string {
	switch {
	case res == nil:
		return "No analysis has been run yet."
	case !res.Succeeded:
		if res.Message != "" {
			return "No parse table: the analysis did not succeed (" + res.Message + ")."
		}
		return "No parse table: the analysis did not succeed."
	default:
		return "The service returned no parse table for this grammar."
	}
}

// HasTable reports whether there is a grid to draw
func (v *ParseTableView) HasTable() bool {
	return v != nil && v.Notice == ""
}

// Cell returns the cell at (row, col) of the grid
func (v *ParseTableView) Cell(row, col int) (TableCell, bool) {
	if v == nil || row < 0 || row >= len(v.Rows) || col < 0 || col >= len(v.Rows[row].Cells) {
		return TableCell{}, false
	}
	return v.Rows[row].Cells[col], true
}

// ConflictCells counts the cells classified as conflicts
func (v *ParseTableView) ConflictCells() int {
	n := 0
	for _, row := range v.Rows {
		for _, cell := range row.Cells {
			if cell.Class.Category == classifier.Conflict {
				n++
			}
		}
	}
	return n
}

// TableRenderOptions selects the optional parts of Render
type TableRenderOptions struct {
	ShowLegend    bool
	ShowRules     bool
	ShowConflicts bool
	CursorRow     int
	CursorCol     int
}

// DefaultTableRenderOptions shows the legend and no cursor
func DefaultTableRenderOptions() TableRenderOptions {
	return TableRenderOptions{ShowLegend: true, CursorRow: -1, CursorCol: -1}
}

// Render draws the table, legend and the expanded lists
func (v *ParseTableView) Render(styles *theme.Styles, opts TableRenderOptions) string {
	if !v.HasTable() {
		return theme.Render(styles.Info, v.Notice)
	}

	var sections []string
	sections = append(sections, v.renderGrid(styles, opts))

	if opts.CursorRow >= 0 {
		if cell, ok := v.Cell(opts.CursorRow, opts.CursorCol); ok {
			sections = append(sections, v.renderCursorInfo(styles, opts.CursorRow, cell))
		}
	}
	if opts.ShowLegend {
		sections = append(sections, v.renderLegend(styles))
	}

	rulesHeader := fmt.Sprintf("Production rules (%d)", len(v.Rules))
	if opts.ShowRules {
		sections = append(sections, renderList(styles, rulesHeader, v.Rules))
	} else {
		sections = append(sections, theme.Render(styles.Muted, "▸ "+rulesHeader))
	}

	if len(v.Conflicts) > 0 {
		conflictsHeader := fmt.Sprintf("Conflict details (%d)", len(v.Conflicts))
		if opts.ShowConflicts {
			sections = append(sections, renderList(styles, conflictsHeader, v.Conflicts))
		} else {
			sections = append(sections, theme.Render(styles.Warning, "▸ "+conflictsHeader))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *ParseTableView) renderGrid(styles *theme.Styles, opts TableRenderOptions) string {
	headers := make([]string, 0, len(v.Columns)+1)
	headers = append(headers, "State")
	for i, col := range v.Columns {
		if i == v.ActionCount && i > 0 {
			col = "│ " + col
		}
		headers = append(headers, col)
	}

	rows := make([][]string, 0, len(v.Rows))
	for r, row := range v.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, strconv.Itoa(row.State))
		for c, cell := range row.Cells {
			text := cell.Text
			if c == v.ActionCount && c > 0 {
				text = "│ " + text
			}
			rendered := styles.Cell(cell.Class.Category, text)
			if r == opts.CursorRow && c == opts.CursorCol {
				rendered = theme.Render(styles.Selected, "["+text+"]")
			}
			cells = append(cells, rendered)
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

func (v *ParseTableView) renderCursorInfo(styles *theme.Styles, rowIdx int, cell TableCell) string {
	state := v.Rows[rowIdx].State
	line := fmt.Sprintf("state %d, %s '%s': %s", state, cell.Section, cell.Column, cell.Class.Category)
	if detail := cell.Detail(); detail != "" {
		return theme.Render(styles.Error, line+" ("+detail+")")
	}
	return theme.Render(styles.Body, line)
}

func (v *ParseTableView) renderLegend(styles *theme.Styles) string {
	parts := make([]string, 0, len(v.Legend))
	for _, e := range v.Legend {
		parts = append(parts, styles.Cell(e.Category, "■ "+e.Label)+theme.Render(styles.Muted, " "+e.Meaning))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Render(styles.Subheader, "Legend"),
		strings.Join(parts, "\n"))
}

func renderList(styles *theme.Styles, header string, items []string) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, theme.Render(styles.Subheader, "▾ "+header))
	for _, item := range items {
		lines = append(lines, "  "+theme.Render(styles.Body, item))
	}
	return strings.Join(lines, "\n")
}
