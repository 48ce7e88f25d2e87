package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/yildizm/lrview/internal/client"
	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/session"
	"github.com/yildizm/lrview/internal/ui/components"
	"github.com/yildizm/lrview/internal/ui/theme"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	// chromeLines is the header and footer space around scrolled content
	chromeLines = 5
)

// menu entries of the summary view
const (
	menuTable = iota
	menuTrace
	menuDiagrams
	menuNew
	menuHelp
)

// App is the interactive bubbletea model
type App struct {
	sess *session.Session
	log  *logger.Logger
	ctx  context.Context

	width    int
	height   int
	ready    bool
	quitting bool

	view     View
	prevView View
	status   string

	form    *huh.Form
	grammar string
	input   string

	loading *components.LoadingIndicator
	pending *session.Pending
	result  *result.AnalysisResult
	err     error

	stats    *components.StatsDashboard
	menu     *components.List
	table    *components.ParseTableView
	trace    *components.TraceView
	diagrams *components.List

	viewport      viewport.Model
	cursorRow     int
	cursorCol     int
	showRules     bool
	showConflicts bool

	downloadDir string
	panes       map[string]*viewerPane
	active      *viewerPane
}

// NewApp creates the app model
func NewApp(opts Options) *App {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	a := &App{
		sess:        opts.Session,
		log:         opts.Logger,
		ctx:         ctx,
		width:       defaultWidth,
		height:      defaultHeight,
		grammar:     opts.Grammar,
		input:       opts.Input,
		downloadDir: opts.DownloadDir,
		loading:     components.NewLoadingIndicator("Building the LR(1) parser..."),
		viewport:    viewport.New(defaultWidth, defaultHeight-chromeLines),
		panes:       make(map[string]*viewerPane),
		cursorRow:   -1,
		cursorCol:   -1,
	}
	a.view = ViewForm
	return a
}

// Init starts the analysis when both inputs are prefilled, otherwise shows
// the form.
func (a *App) Init() tea.Cmd {
	if a.grammar != "" && a.input != "" {
		if cmd := a.submit(a.grammar, a.input); cmd != nil {
			return cmd
		}
	}
	return a.openForm()
}

// Update handles messages and navigation
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleWindowResize(msg)
	case analysisDoneMsg:
		return a.handleAnalysisDone(msg)
	case downloadDoneMsg:
		return a.handleDownloadDone(msg)
	case tea.MouseMsg:
		return a.handleMouse(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}
		if a.view == ViewForm {
			return a.updateForm(msg)
		}
		return a.handleKeyPress(msg)
	}

	switch a.view {
	case ViewForm:
		return a.updateForm(msg)
	case ViewLoading:
		return a, a.loading.Update(msg)
	}
	return a, nil
}

// View returns the current screen output
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	switch a.view {
	case ViewForm:
		return a.renderForm()
	case ViewLoading:
		return a.renderLoading()
	case ViewSummary:
		return a.renderSummary()
	case ViewTable, ViewTrace:
		return a.renderScrolled()
	case ViewDiagrams:
		return a.renderDiagrams()
	case ViewViewer:
		return a.renderViewer()
	case ViewHelp:
		return a.renderHelp()
	case ViewError:
		return a.renderError()
	}
	return ""
}

// CurrentView is the view being shown
func (a *App) CurrentView() View {
	return a.view
}

// Result is the last settled analysis result
func (a *App) Result() *result.AnalysisResult {
	return a.result
}

// Status is the transient status line
func (a *App) Status() string {
	return a.status
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	if a.active != nil {
		a.active.viewer.Close()
	}
	return a, tea.Quit
}

// submit claims the session for grammar and input. It returns nil when the
// submission was rejected; the reason is left in the status line.
func (a *App) submit(grammar, input string) tea.Cmd {
	p, err := a.sess.Submit(grammar, input)
	switch {
	case errors.Is(err, session.ErrBusy):
		a.status = "An analysis is already running; wait for it to finish."
		return nil
	case err != nil:
		a.status = err.Error()
		return nil
	}

	a.grammar, a.input = grammar, input
	a.pending = p
	a.result, a.err = nil, nil
	a.status = ""
	a.closeViewer()
	a.setView(ViewLoading)
	a.log.InfoWithFields("analysis submitted", []logger.Field{logger.F("input", input)})
	return tea.Batch(a.loading.Start(), analysisCmd(a.ctx, p))
}

func (a *App) openForm() tea.Cmd {
	a.form = NewInputForm(&a.grammar, &a.input)
	a.setView(ViewForm)
	return a.form.Init()
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a, a.openForm()
	}
	model, cmd := a.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.form = nil
		if next := a.submit(a.grammar, a.input); next != nil {
			return a, next
		}
		return a, a.openForm()
	case huh.StateAborted:
		a.form = nil
		if a.result != nil {
			a.setView(ViewSummary)
			return a, nil
		}
		return a.quit()
	}
	return a, cmd
}

func (a *App) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height
	a.ready = true
	a.viewport.Width = max(1, a.width)
	a.viewport.Height = max(1, a.height-chromeLines)
	a.refreshViewport()
	return a, nil
}

func (a *App) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	a.pending = nil
	if msg.err != nil {
		a.err = msg.err
		a.result = nil
		a.log.WarnWithFields("analysis failed", []logger.Field{logger.Error(msg.err)})
		a.setView(ViewError)
		return a, nil
	}
	a.setResult(msg.result)
	a.setView(ViewSummary)
	return a, nil
}

func (a *App) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.status = "Download failed: " + msg.err.Error()
		a.log.WarnWithFields("download failed", []logger.Field{logger.Error(msg.err)})
		return a, nil
	}
	a.status = "Saved " + msg.path
	a.log.InfoWithFields("diagram saved", []logger.Field{logger.F("path", msg.path)})
	return a, nil
}

func (a *App) setResult(res *result.AnalysisResult) {
	a.result = res
	a.err = nil
	a.stats = components.CreateResultStats(res)
	a.table = components.BuildParseTable(res)
	a.trace = components.BuildTrace(res)
	a.diagrams = components.NewDiagramList(res, 60, 10)
	a.cursorRow, a.cursorCol = -1, -1
	if a.table.HasTable() && len(a.table.Rows) > 0 {
		a.cursorRow, a.cursorCol = 0, 0
	}
	a.showRules, a.showConflicts = false, false

	a.menu = components.NewList("Views", 60, 12)
	a.menu.SetItems([]components.ListItem{
		{ID: "table", Title: "Parse table", Description: tablePreview(a.table)},
		{ID: "trace", Title: "Transitions", Description: tracePreview(a.trace)},
		{ID: "diagrams", Title: "Automaton diagrams"},
		{ID: "new", Title: "New analysis"},
		{ID: "help", Title: "Help"},
	})

	a.panes = map[string]*viewerPane{}
	if res.Diagrams != nil {
		if res.Diagrams.NFA != nil {
			a.panes["nfa"] = newViewerPane(res.Diagrams.NFA.Title, res.Diagrams.NFA, a.viewerClosed, a.log)
		}
		if res.Diagrams.DFA != nil {
			a.panes["dfa"] = newViewerPane(res.Diagrams.DFA.Title, res.Diagrams.DFA, a.viewerClosed, a.log)
		}
	}
	a.active = nil
}

func tablePreview(v *components.ParseTableView) string {
	if !v.HasTable() {
		return "not available"
	}
	return fmt.Sprintf("%d states, %d conflicting cells", len(v.Rows), v.ConflictCells())
}

func tracePreview(v *components.TraceView) string {
	if !v.HasTrace() {
		return "not available"
	}
	verdict := "rejected"
	if v.Summary.Accepted {
		verdict = "accepted"
	}
	return fmt.Sprintf("%d steps, %s", v.Summary.TotalSteps, verdict)
}

func (a *App) setView(v View) {
	if v != a.view {
		a.prevView = a.view
	}
	a.view = v
	a.refreshViewport()
}

// refreshViewport redraws scrolled content for the table and trace views
func (a *App) refreshViewport() {
	styles := theme.GetStyles()
	switch a.view {
	case ViewTable:
		if a.table == nil {
			return
		}
		opts := components.DefaultTableRenderOptions()
		opts.ShowRules = a.showRules
		opts.ShowConflicts = a.showConflicts
		opts.CursorRow, opts.CursorCol = a.cursorRow, a.cursorCol
		a.viewport.SetContent(a.table.Render(styles, opts))
		a.keepCursorVisible()
	case ViewTrace:
		if a.trace == nil {
			return
		}
		a.viewport.SetContent(a.trace.Render(styles))
	}
}

// keepCursorVisible scrolls so the cursor row stays on screen. Grid rows
// start after the top border, the header and the header separator.
func (a *App) keepCursorVisible() {
	if a.cursorRow < 0 {
		return
	}
	line := 3 + a.cursorRow
	switch {
	case line < a.viewport.YOffset:
		a.viewport.SetYOffset(line)
	case line >= a.viewport.YOffset+a.viewport.Height:
		a.viewport.SetYOffset(line - a.viewport.Height + 1)
	}
}

func (a *App) viewerClosed() {
	a.active = nil
	if a.view == ViewViewer {
		a.setView(ViewDiagrams)
	}
}

func (a *App) closeViewer() {
	if a.active != nil {
		a.active.viewer.Close()
	}
}

func (a *App) rasterSize() (cols, rows int) {
	return max(1, a.width), max(1, a.height-viewerHeaderLines-2)
}

// errorMessage is the user-facing text of the last failure
func (a *App) errorMessage() string {
	if a.err == nil {
		return ""
	}
	if session.IsValidationError(a.err) {
		return a.err.Error()
	}
	return client.UserMessage(a.err)
}

// Run runs the interactive TUI until the user quits
func Run(opts Options) error {
	app := NewApp(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(app, programOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
