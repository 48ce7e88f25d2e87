package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/lrview/internal/emoji"
	"github.com/yildizm/lrview/internal/ui/theme"
)

// LoadingIndicator shows that an analysis request is in flight
type LoadingIndicator struct {
	spinner spinner.Model
	label   string
	started time.Time
	now     func() time.Time
}

// NewLoadingIndicator creates a spinner with label
func NewLoadingIndicator(label string) *LoadingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.GetStyles().Info
	return &LoadingIndicator{spinner: s, label: label, now: time.Now}
}

// Start resets the elapsed time and returns the first tick
func (l *LoadingIndicator) Start() tea.Cmd {
	l.started = l.now()
	return l.spinner.Tick
}

// Update advances the spinner animation
func (l *LoadingIndicator) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// Elapsed is the time since Start
func (l *LoadingIndicator) Elapsed() time.Duration {
	if l.started.IsZero() {
		return 0
	}
	return l.now().Sub(l.started).Truncate(100 * time.Millisecond)
}

// View renders the spinner line
func (l *LoadingIndicator) View() string {
	styles := theme.GetStyles()
	frame := l.spinner.View()
	if theme.IsColorDisabled() {
		frame = emoji.GetEmoji("rocket")
	}
	return fmt.Sprintf("%s %s %s", frame, theme.Render(styles.Body, l.label),
		theme.Render(styles.Muted, fmt.Sprintf("(%s)", l.Elapsed())))
}
