package ui

import (
	"context"

	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/session"
)

// View represents different UI views
type View int

const (
	ViewForm View = iota
	ViewLoading
	ViewSummary
	ViewTable
	ViewTrace
	ViewDiagrams
	ViewViewer
	ViewHelp
	ViewError
)

func (v View) String() string {
	switch v {
	case ViewForm:
		return "input"
	case ViewLoading:
		return "loading"
	case ViewSummary:
		return "summary"
	case ViewTable:
		return "parse table"
	case ViewTrace:
		return "transitions"
	case ViewDiagrams:
		return "diagrams"
	case ViewViewer:
		return "viewer"
	case ViewHelp:
		return "help"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// Options configures the interactive app
type Options struct {
	Session *session.Session
	Logger  *logger.Logger
	Context context.Context

	// Grammar and Input prefill the form. When both are set the analysis
	// starts right away.
	Grammar string
	Input   string

	DownloadDir string
	Mouse       bool
}
