package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/session"
	"github.com/yildizm/lrview/internal/viewer"
)

type analysisDoneMsg struct {
	result *result.AnalysisResult
	err    error
}

type downloadDoneMsg struct {
	path string
	err  error
}

// analysisCmd runs a claimed submission off the update loop
func analysisCmd(ctx context.Context, p *session.Pending) tea.Cmd {
	return func() tea.Msg {
		res, err := p.Run(ctx)
		return analysisDoneMsg{result: res, err: err}
	}
}

func downloadCmd(v *viewer.Viewer, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := v.Download(dir)
		return downloadDoneMsg{path: path, err: err}
	}
}
