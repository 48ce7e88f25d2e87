package components

import (
	"fmt"
	"strings"

	"github.com/yildizm/lrview/internal/emoji"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/theme"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string
	Icon        string
	Disabled    bool
	Data        interface{}
}

// List represents a navigable list component
type List struct {
	Title         string
	Items         []ListItem
	Selected      int
	Focused       bool
	Width         int
	Height        int
	ShowNumbers   bool
	ShowIcons     bool
	searchQuery   string
	filteredItems []int
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
		ShowIcons:   true,
	}
}

// AddItem adds an item to the list
func (l *List) AddItem(item *ListItem) {
	l.Items = append(l.Items, *item)
	l.updateFilter()
}

// SetItems sets all items in the list
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = 0
	l.updateFilter()
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// Len returns the number of visible items
func (l *List) Len() int {
	return len(l.filteredItems)
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if len(l.filteredItems) == 0 || l.Selected >= len(l.filteredItems) {
		return nil
	}
	index := l.filteredItems[l.Selected]
	if index >= len(l.Items) {
		return nil
	}
	return &l.Items[index]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.filteredItems)-1 {
		l.Selected++
	}
}

// SetSearch sets the search query and filters items
func (l *List) SetSearch(query string) {
	l.searchQuery = query
	l.Selected = 0
	l.updateFilter()
}

func (l *List) updateFilter() {
	l.filteredItems = l.filteredItems[:0]
	for i := range l.Items {
		if l.searchQuery == "" || matchesSearch(&l.Items[i], l.searchQuery) {
			l.filteredItems = append(l.filteredItems, i)
		}
	}
	if l.Selected >= len(l.filteredItems) {
		l.Selected = 0
	}
}

func matchesSearch(item *ListItem, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Description), query) ||
		strings.Contains(strings.ToLower(item.ID), query)
}

// Render renders the list
func (l *List) Render() string {
	styles := theme.GetStyles()

	var content []string
	title := theme.Render(styles.Header, l.Title)
	if l.Focused {
		title = theme.Render(styles.Focused, l.Title)
	}
	content = append(content, title)

	if l.searchQuery != "" {
		content = append(content, theme.Render(styles.Muted,
			fmt.Sprintf("Search: %s (%d results)", l.searchQuery, len(l.filteredItems))))
	}
	content = append(content, "")

	maxVisible := l.Height - 4
	if maxVisible < 1 {
		maxVisible = 1
	}

	startIndex := 0
	if l.Selected >= maxVisible {
		startIndex = l.Selected - maxVisible + 1
	}
	endIndex := startIndex + maxVisible
	if endIndex > len(l.filteredItems) {
		endIndex = len(l.filteredItems)
	}

	for i := startIndex; i < endIndex; i++ {
		item := l.Items[l.filteredItems[i]]
		content = append(content, l.renderItem(styles, &item, i+1, i == l.Selected))
	}

	if len(l.filteredItems) > maxVisible {
		content = append(content, "", theme.Render(styles.Muted,
			fmt.Sprintf("(%d-%d of %d)", startIndex+1, endIndex, len(l.filteredItems))))
	}

	return strings.Join(content, "\n")
}

func (l *List) renderItem(styles *theme.Styles, item *ListItem, number int, selected bool) string {
	var parts []string
	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}
	if l.ShowIcons && item.Icon != "" {
		parts = append(parts, item.Icon)
	}
	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)
	line := strings.Join(parts, " ")

	if selected {
		return theme.Render(styles.ListSelected, "▸ "+line)
	}

	style := styles.ListItem
	switch {
	case item.Disabled:
		style = styles.Muted
	case item.Status == "success":
		style = styles.Success
	case item.Status == "warning":
		style = styles.Warning
	case item.Status == "error":
		style = styles.Error
	}
	return theme.Render(style, "  "+line)
}

// DiagramChoice identifies one automaton image of a result
type DiagramChoice struct {
	Key   string
	Image *result.ImageRef
}

// NewDiagramList creates the menu of automaton diagrams. Missing images stay
// listed but disabled so the user sees what the service did not return.
func NewDiagramList(res *result.AnalysisResult, width, height int) *List {
	list := NewList("Automaton diagrams", width, height)

	var nfa, dfa *result.ImageRef
	if res != nil && res.Diagrams != nil {
		nfa, dfa = res.Diagrams.NFA, res.Diagrams.DFA
	}

	add := func(key, name string, img *result.ImageRef) {
		item := ListItem{
			ID:    key,
			Title: name,
			Icon:  emoji.GetEmoji("diagram"),
			Data:  DiagramChoice{Key: key, Image: img},
		}
		if img == nil {
			item.Description = "not available"
			item.Disabled = true
		} else {
			item.Description = img.Title
			item.Status = "success"
		}
		list.AddItem(&item)
	}
	add("nfa", "NFA of LR(1) items", nfa)
	add("dfa", "DFA (canonical collection)", dfa)
	return list
}
