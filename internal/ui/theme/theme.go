// Package theme holds the color themes and shared lipgloss styles of the
// interactive UI and the terminal formatter.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/lrview/internal/classifier"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor

	// Parse table cell colors
	Shift    lipgloss.AdaptiveColor
	Reduce   lipgloss.AdaptiveColor
	Accept   lipgloss.AdaptiveColor
	Goto     lipgloss.AdaptiveColor
	Conflict lipgloss.AdaptiveColor
}

type palette struct {
	primary, secondary, accent          [2]string
	success, warning, errorColor, info  [2]string
	border, foreground, muted           [2]string
	highlight, selected                 [2]string
	shift, reduce, accept, gotoc, clash [2]string
}

func adaptive(c [2]string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
}

func buildTheme(name string, p palette) Theme {
	return Theme{
		Name:       name,
		Primary:    adaptive(p.primary),
		Secondary:  adaptive(p.secondary),
		Accent:     adaptive(p.accent),
		Success:    adaptive(p.success),
		Warning:    adaptive(p.warning),
		Error:      adaptive(p.errorColor),
		Info:       adaptive(p.info),
		Border:     adaptive(p.border),
		Foreground: adaptive(p.foreground),
		Muted:      adaptive(p.muted),
		Highlight:  adaptive(p.highlight),
		Selected:   adaptive(p.selected),
		Shift:      adaptive(p.shift),
		Reduce:     adaptive(p.reduce),
		Accept:     adaptive(p.accept),
		Goto:       adaptive(p.gotoc),
		Conflict:   adaptive(p.clash),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default", palette{
		primary: [2]string{"#1E40AF", "#3B82F6"}, secondary: [2]string{"#6B7280", "#9CA3AF"}, accent: [2]string{"#7C3AED", "#A855F7"},
		success: [2]string{"#059669", "#10B981"}, warning: [2]string{"#D97706", "#F59E0B"}, errorColor: [2]string{"#DC2626", "#EF4444"},
		info: [2]string{"#0891B2", "#06B6D4"}, border: [2]string{"#D1D5DB", "#374151"}, foreground: [2]string{"#111827", "#F9FAFB"},
		muted: [2]string{"#6B7280", "#9CA3AF"}, highlight: [2]string{"#FEF3C7", "#1F2937"}, selected: [2]string{"#DBEAFE", "#1E3A8A"},
		shift: [2]string{"#1D4ED8", "#60A5FA"}, reduce: [2]string{"#B45309", "#FBBF24"}, accept: [2]string{"#047857", "#34D399"},
		gotoc: [2]string{"#6D28D9", "#C4B5FD"}, clash: [2]string{"#B91C1C", "#F87171"},
	})

	HighContrastTheme = buildTheme("high-contrast", palette{
		primary: [2]string{"#000000", "#FFFFFF"}, secondary: [2]string{"#666666", "#BBBBBB"}, accent: [2]string{"#000080", "#8080FF"},
		success: [2]string{"#006600", "#00FF00"}, warning: [2]string{"#CC6600", "#FFAA00"}, errorColor: [2]string{"#CC0000", "#FF4444"},
		info: [2]string{"#0066CC", "#4499FF"}, border: [2]string{"#000000", "#FFFFFF"}, foreground: [2]string{"#000000", "#FFFFFF"},
		muted: [2]string{"#666666", "#BBBBBB"}, highlight: [2]string{"#FFFF00", "#444444"}, selected: [2]string{"#CCCCCC", "#333333"},
		shift: [2]string{"#0000CC", "#66CCFF"}, reduce: [2]string{"#996600", "#FFFF00"}, accept: [2]string{"#006600", "#00FF00"},
		gotoc: [2]string{"#660099", "#FF80FF"}, clash: [2]string{"#CC0000", "#FF0000"},
	})

	MinimalTheme = buildTheme("minimal", palette{
		primary: [2]string{"#2D3748", "#E2E8F0"}, secondary: [2]string{"#718096", "#A0AEC0"}, accent: [2]string{"#4A5568", "#CBD5E0"},
		success: [2]string{"#2F855A", "#68D391"}, warning: [2]string{"#C05621", "#F6AD55"}, errorColor: [2]string{"#C53030", "#FC8181"},
		info: [2]string{"#2B6CB0", "#63B3ED"}, border: [2]string{"#E2E8F0", "#2D3748"}, foreground: [2]string{"#2D3748", "#F7FAFC"},
		muted: [2]string{"#A0AEC0", "#718096"}, highlight: [2]string{"#F7FAFC", "#2D3748"}, selected: [2]string{"#EDF2F7", "#2D3748"},
		shift: [2]string{"#2D3748", "#E2E8F0"}, reduce: [2]string{"#4A5568", "#CBD5E0"}, accept: [2]string{"#2F855A", "#68D391"},
		gotoc: [2]string{"#718096", "#A0AEC0"}, clash: [2]string{"#C53030", "#FC8181"},
	})
)

var (
	currentTheme  = DefaultTheme
	colorDisabled bool
)

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
	case "high-contrast":
		SetTheme(&HighContrastTheme)
	case "minimal":
		SetTheme(&MinimalTheme)
	default:
		return false
	}
	return true
}

// SetColorDisabled turns styling off regardless of the environment
func SetColorDisabled(disabled bool) {
	colorDisabled = disabled
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return colorDisabled || os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Render applies style unless colors are disabled
func Render(style lipgloss.Style, text string) string {
	if IsColorDisabled() {
		return text
	}
	return style.Render(text)
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Selected lipgloss.Style
	Focused  lipgloss.Style

	Box   lipgloss.Style
	Panel lipgloss.Style

	Highlight lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	Cells map[classifier.Category]lipgloss.Style
}

// GetStyles builds the styles of the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Subheader: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(theme.Info),

		Selected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),
		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().
			Background(theme.Highlight).
			Foreground(theme.Primary),

		ListItem: lipgloss.NewStyle().
			Padding(0, 2),
		ListSelected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Padding(0, 2).
			Bold(true),

		Cells: map[classifier.Category]lipgloss.Style{
			classifier.Empty:    lipgloss.NewStyle().Foreground(theme.Muted),
			classifier.Shift:    lipgloss.NewStyle().Foreground(theme.Shift),
			classifier.Reduce:   lipgloss.NewStyle().Foreground(theme.Reduce),
			classifier.Accept:   lipgloss.NewStyle().Foreground(theme.Accept).Bold(true),
			classifier.Goto:     lipgloss.NewStyle().Foreground(theme.Goto),
			classifier.Conflict: lipgloss.NewStyle().Foreground(theme.Conflict).Bold(true).Underline(true),
		},
	}
}

// Cell renders text in the style of category
func (s *Styles) Cell(category classifier.Category, text string) string {
	style, ok := s.Cells[category]
	if !ok {
		return text
	}
	return Render(style, text)
}
