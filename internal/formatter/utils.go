package formatter

import (
	"fmt"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/lrview/internal/classifier"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/components"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// emojiOr returns the termfmt symbol for key, or fallback when termfmt has none
func emojiOr(key, fallback string, opts *termfmt.TerminalOptions) string {
	if symbol := termfmt.GetEmoji(key, opts); symbol != "" {
		return symbol
	}
	return fallback
}

// tableDensity is the share of action cells that are not empty
func tableDensity(view *components.ParseTableView) float64 {
	total, filled := 0, 0
	for _, row := range view.Rows {
		for _, cell := range row.Cells {
			if cell.Section != components.SectionAction {
				continue
			}
			total++
			if cell.Class.Category != classifier.Empty {
				filled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}

func analysisStatus(res *result.AnalysisResult) string {
	if res.Succeeded {
		return "succeeded"
	}
	return "failed"
}
