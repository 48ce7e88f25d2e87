package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/lrview/internal/emoji"
	"github.com/yildizm/lrview/internal/ui/components"
	"github.com/yildizm/lrview/internal/ui/theme"
)

func (a *App) header(title string) string {
	styles := theme.GetStyles()
	return theme.Render(styles.Title, "lrview") + theme.Render(styles.Muted, " • ") + theme.Render(styles.Header, title)
}

func (a *App) footer(hints string) string {
	styles := theme.GetStyles()
	lines := []string{}
	if a.status != "" {
		lines = append(lines, theme.Render(styles.Warning, a.status))
	}
	lines = append(lines, theme.Render(styles.Muted, hints))
	return strings.Join(lines, "\n")
}

func (a *App) renderForm() string {
	styles := theme.GetStyles()
	body := ""
	if a.form != nil {
		body = a.form.View()
	}
	parts := []string{
		a.header(emoji.GetEmoji("grammar") + " New analysis"),
		"",
		body,
	}
	if a.status != "" {
		parts = append(parts, theme.Render(styles.Error, a.status))
	}
	return strings.Join(parts, "\n")
}

func (a *App) renderLoading() string {
	styles := theme.GetStyles()
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		theme.Render(styles.Title, "lrview"),
		"",
		a.loading.View(),
		"",
		theme.Render(styles.Muted, fmt.Sprintf("Input: %s", a.input)),
		"",
		a.footer("ctrl+c quit"),
	)
	boxed := styles.Box.Padding(1, 4).Render(content)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, boxed)
}

func (a *App) renderSummary() string {
	if a.result == nil {
		return a.renderError()
	}
	width := min(a.width-4, 80)
	summary := components.CreateResultSummary(a.result, width)
	parts := []string{
		a.header(emoji.GetEmoji("statistics") + " Summary"),
		"",
		a.stats.Render(),
		summary.Render(),
		"",
		a.menu.Render(),
		"",
		a.footer("↑↓ move • enter select • 1 table • 2 transitions • 3 diagrams • n new • ? help • q quit"),
	}
	return strings.Join(parts, "\n")
}

func (a *App) renderScrolled() string {
	title := emoji.GetEmoji("table") + " Parse table"
	hints := "arrows move cursor • r rules • c conflicts • pgup/pgdn scroll • esc back • q quit"
	if a.view == ViewTrace {
		title = emoji.GetEmoji("trace") + " Transitions"
		hints = "↑↓ scroll • esc back • q quit"
	}
	scroll := theme.Render(theme.GetStyles().Muted, fmt.Sprintf(" %3.0f%%", a.viewport.ScrollPercent()*100))
	return strings.Join([]string{
		a.header(title) + scroll,
		"",
		a.viewport.View(),
		a.footer(hints),
	}, "\n")
}

func (a *App) renderDiagrams() string {
	return strings.Join([]string{
		a.header(emoji.GetEmoji("diagram") + " Diagrams"),
		"",
		a.diagrams.Render(),
		"",
		a.footer("↑↓ move • enter open • d download • esc back • q quit"),
	}, "\n")
}

func (a *App) renderViewer() string {
	if a.active == nil {
		return a.renderDiagrams()
	}
	cols, rows := a.rasterSize()
	return a.active.render(cols, rows) + "\n" +
		a.footer("+/- zoom • wheel zoom • drag pan • 0 fit • d download • esc close")
}

func (a *App) renderHelp() string {
	styles := theme.GetStyles()
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Global", [][2]string{
			{"n", "new analysis"}, {"ctrl+r", "re-run the last analysis"},
			{"?", "this help"}, {"esc", "back"}, {"q / ctrl+c", "quit"},
		}},
		{"Parse table", [][2]string{
			{"arrows / hjkl", "move the cell cursor"}, {"r", "toggle production rules"},
			{"c", "toggle conflict details"}, {"pgup / pgdn", "scroll"},
		}},
		{"Viewer", [][2]string{
			{"+ / -", "zoom in and out"}, {"0", "fit"}, {"mouse wheel", "zoom"},
			{"drag", "pan when zoomed in"}, {"d", "download the original image"}, {"esc", "close"},
		}},
	}

	lines := []string{a.header(emoji.GetEmoji("help") + " Help"), ""}
	for _, s := range sections {
		lines = append(lines, theme.Render(styles.Subheader, s.title))
		for _, k := range s.keys {
			lines = append(lines, fmt.Sprintf("  %-16s %s", theme.Render(styles.Highlight, k[0]), k[1]))
		}
		lines = append(lines, "")
	}
	lines = append(lines, a.footer("esc back"))
	return strings.Join(lines, "\n")
}

func (a *App) renderError() string {
	styles := theme.GetStyles()
	message := a.errorMessage()
	if message == "" {
		message = "No analysis data available"
	}
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.Render(styles.Error, emoji.GetEmoji("error")+" Analysis failed"),
		"",
		theme.Render(styles.Body, message),
		"",
		a.footer("enter edit inputs • ctrl+r retry • q quit"),
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, styles.Box.Padding(1, 3).Render(content))
}
