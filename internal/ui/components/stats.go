package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/lrview/internal/emoji"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/theme"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Width       int
	Height      int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       20,
		Height:      4,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// SetSize sets the size of the card
func (s *StatsCard) SetSize(width, height int) *StatsCard {
	s.Width = width
	s.Height = height
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	styles := theme.GetStyles()

	valueStyle := styles.Body
	switch s.Status {
	case "success":
		valueStyle = styles.Success
	case "warning":
		valueStyle = styles.Warning
	case "error":
		valueStyle = styles.Error
	case "info":
		valueStyle = styles.Info
	}

	title := theme.Render(styles.Header, s.Title)
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		theme.Render(valueStyle.Bold(true), s.Value),
		theme.Render(styles.Muted, s.Description),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Theme.Border).
		Padding(1).
		Width(s.Width).
		Height(s.Height).
		Render(content)
}

// StatsDashboard represents a collection of stats cards
type StatsDashboard struct {
	cards      []*StatsCard
	columns    int
	cardWidth  int
	cardHeight int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	if columns < 1 {
		columns = 1
	}
	return &StatsDashboard{
		columns:    columns,
		cardWidth:  20,
		cardHeight: 4,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetSize(d.cardWidth, d.cardHeight)
	d.cards = append(d.cards, card)
}

// Cards returns the cards in display order
func (d *StatsDashboard) Cards() []*StatsCard {
	return d.cards
}

// SetCardSize sets the default size for all cards
func (d *StatsDashboard) SetCardSize(width, height int) {
	d.cardWidth = width
	d.cardHeight = height
	for _, card := range d.cards {
		card.SetSize(width, height)
	}
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := i + d.columns
		if end > len(d.cards) {
			end = len(d.cards)
		}

		var rowCards []string
		for j := i; j < end; j++ {
			rowCards = append(rowCards, d.cards[j].Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CreateResultStats creates the statistics cards of an analysis
func CreateResultStats(res *result.AnalysisResult) *StatsDashboard {
	dashboard := NewStatsDashboard(3)
	st := res.Statistics

	dashboard.AddCard(NewStatsCard("NFA states", formatNumber(st.NFAStateCount), "LR(1) item automaton").
		SetIcon(emoji.GetEmoji("diagram")).SetStatus("info"))
	dashboard.AddCard(NewStatsCard("DFA states", formatNumber(st.DFAStateCount), "canonical collection").
		SetIcon(emoji.GetEmoji("diagram")).SetStatus("info"))
	dashboard.AddCard(NewStatsCard("Productions", formatNumber(st.ProductionCount), "grammar rules").
		SetIcon(emoji.GetEmoji("grammar")).SetStatus("info"))

	lr1Value, lr1Status := "yes", "success"
	if !st.IsLR1 {
		lr1Value, lr1Status = "no", "error"
	}
	dashboard.AddCard(NewStatsCard("LR(1)", lr1Value, "grammar class").
		SetIcon(emoji.GetEmoji("table")).SetStatus(lr1Status))

	conflicts := res.ConflictCount()
	conflictStatus := "success"
	if conflicts > 0 {
		conflictStatus = "warning"
	}
	dashboard.AddCard(NewStatsCard("Conflicts", formatNumber(conflicts), "in the parse table").
		SetIcon(emoji.GetEmoji("conflict")).SetStatus(conflictStatus))

	if res.Trace != nil {
		verdict, status := "accepted", "success"
		if !res.Trace.Accepted {
			verdict, status = "rejected", "error"
		}
		dashboard.AddCard(NewStatsCard("Input", verdict, fmt.Sprintf("%d steps", len(res.Trace.Steps))).
			SetIcon(emoji.GetEmoji("trace")).SetStatus(status))
	}

	return dashboard
}

// formatNumber formats large numbers with commas
func formatNumber(n int) string {
	str := strconv.Itoa(n)
	if n < 0 || len(str) <= 3 {
		return str
	}

	var out strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			out.WriteString(",")
		}
		out.WriteRune(digit)
	}
	return out.String()
}

// SummaryBox creates a summary information box
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int) *SummaryBox {
	return &SummaryBox{
		Title: title,
		Width: width,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-15s: %s", key, value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	styles := theme.GetStyles()

	content := make([]string, 0, len(s.Content)+2)
	content = append(content, theme.Render(styles.Header, s.Title), "")
	for _, line := range s.Content {
		content = append(content, theme.Render(styles.Body, line))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Theme.Border).
		Padding(1).
		Width(s.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// CreateResultSummary summarizes the service verdict of an analysis
func CreateResultSummary(res *result.AnalysisResult, width int) *SummaryBox {
	box := NewSummaryBox("Analysis", width)
	status := emoji.GetEmoji("success") + " succeeded"
	if !res.Succeeded {
		status = emoji.GetEmoji("error") + " failed"
	}
	box.AddKeyValue("Status", status)
	if res.Message != "" {
		box.AddKeyValue("Message", res.Message)
	}
	if res.Trace != nil {
		box.AddKeyValue("Input", res.Trace.InputString)
	}
	diagrams := "none"
	if d := res.Diagrams; d != nil {
		var names []string
		if d.NFA != nil {
			names = append(names, "NFA")
		}
		if d.DFA != nil {
			names = append(names, "DFA")
		}
		diagrams = strings.Join(names, ", ")
	}
	box.AddKeyValue("Diagrams", diagrams)
	return box
}
