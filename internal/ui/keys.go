package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/lrview/internal/ui/components"
)

// handleKeyPress handles keyboard input outside the form
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.view == ViewViewer {
		return a.handleViewerKey(key)
	}

	switch key {
	case "q":
		return a.quit()
	case "ctrl+r":
		return a, a.submit(a.grammar, a.input)
	case "?":
		if a.view != ViewLoading {
			a.setView(ViewHelp)
		}
		return a, nil
	case "n":
		if a.view == ViewLoading {
			a.status = "An analysis is already running; wait for it to finish."
			return a, nil
		}
		return a, a.openForm()
	case "esc":
		return a.handleEscape()
	}

	switch a.view {
	case ViewSummary:
		return a.handleSummaryKey(key)
	case ViewTable:
		return a.handleTableKey(msg)
	case ViewTrace:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	case ViewDiagrams:
		return a.handleDiagramsKey(key)
	case ViewError:
		if key == "enter" {
			return a, a.openForm()
		}
	}
	return a, nil
}

// handleEscape goes back one level
func (a *App) handleEscape() (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewTable, ViewTrace, ViewDiagrams:
		a.setView(ViewSummary)
	case ViewHelp:
		back := a.prevView
		if back == ViewHelp || back == ViewLoading || back == ViewViewer {
			back = ViewSummary
		}
		if a.result == nil && back != ViewError {
			return a, a.openForm()
		}
		a.setView(back)
	case ViewError:
		return a, a.openForm()
	}
	return a, nil
}

func (a *App) handleSummaryKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		a.menu.MoveUp()
	case "down", "j":
		a.menu.MoveDown()
	case "1":
		return a.selectMenu(menuTable)
	case "2":
		return a.selectMenu(menuTrace)
	case "3":
		return a.selectMenu(menuDiagrams)
	case "enter", " ":
		return a.selectMenu(a.menu.Selected)
	}
	return a, nil
}

func (a *App) selectMenu(index int) (tea.Model, tea.Cmd) {
	switch index {
	case menuTable:
		a.viewport.GotoTop()
		a.setView(ViewTable)
	case menuTrace:
		a.viewport.GotoTop()
		a.setView(ViewTrace)
	case menuDiagrams:
		a.setView(ViewDiagrams)
	case menuNew:
		return a, a.openForm()
	case menuHelp:
		a.setView(ViewHelp)
	}
	return a, nil
}

func (a *App) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		a.showRules = !a.showRules
	case "c":
		a.showConflicts = !a.showConflicts
	case "up", "k":
		a.moveCursor(-1, 0)
	case "down", "j":
		a.moveCursor(1, 0)
	case "left", "h":
		a.moveCursor(0, -1)
	case "right", "l":
		a.moveCursor(0, 1)
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	a.refreshViewport()
	return a, nil
}

func (a *App) moveCursor(dRow, dCol int) {
	if a.table == nil || !a.table.HasTable() || len(a.table.Rows) == 0 {
		return
	}
	a.cursorRow = clampIndex(a.cursorRow+dRow, len(a.table.Rows))
	a.cursorCol = clampIndex(a.cursorCol+dCol, len(a.table.Columns))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// CursorCell is the table cell under the cursor
func (a *App) CursorCell() (components.TableCell, bool) {
	return a.table.Cell(a.cursorRow, a.cursorCol)
}

func (a *App) handleDiagramsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		a.diagrams.MoveUp()
	case "down", "j":
		a.diagrams.MoveDown()
	case "enter", " ":
		item := a.diagrams.GetSelectedItem()
		if item == nil {
			return a, nil
		}
		a.openViewer(item.ID)
	case "d":
		if item := a.diagrams.GetSelectedItem(); item != nil {
			if pane, ok := a.panes[item.ID]; ok {
				return a, downloadCmd(pane.viewer, a.downloadDir)
			}
			a.status = "That diagram was not returned by the service."
		}
	}
	return a, nil
}

func (a *App) openViewer(id string) {
	pane, ok := a.panes[id]
	if !ok {
		a.status = "That diagram was not returned by the service."
		return
	}
	a.status = ""
	a.active = pane
	cols, rows := a.rasterSize()
	pane.open(cols, rows)
	a.setView(ViewViewer)
}

func (a *App) handleViewerKey(key string) (tea.Model, tea.Cmd) {
	if a.active == nil {
		a.setView(ViewDiagrams)
		return a, nil
	}
	if a.active.handleKey(key) {
		return a, nil
	}
	switch key {
	case "d":
		return a, downloadCmd(a.active.viewer, a.downloadDir)
	case "q":
		a.active.viewer.Close()
	}
	return a, nil
}

// handleMouse routes mouse events to the open viewer, or scrolls content
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewViewer:
		if a.active != nil {
			a.active.handleMouse(msg)
		}
	case ViewTable, ViewTrace:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}
