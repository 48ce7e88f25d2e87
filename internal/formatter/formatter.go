package formatter

import (
	"fmt"

	"github.com/yildizm/lrview/internal/result"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(res *result.AnalysisResult) ([]byte, error)
}

// Formats lists the accepted output format names
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for format. color only affects text output.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "text", "terminal", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
