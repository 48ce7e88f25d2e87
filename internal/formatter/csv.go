package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/components"
)

// csvFormatter formats classified parse-table cells as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

// Format writes one record per non-empty table cell. Empty cells are
// omitted so the export stays proportional to the table's content.
func (f *csvFormatter) Format(res *result.AnalysisResult) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{"State", "Section", "Symbol", "Value", "Category", "Conflict"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	view := components.BuildParseTable(res)
	for _, row := range view.Rows {
		for _, cell := range row.Cells {
			if cell.Raw == "" && cell.Detail() == "" {
				continue
			}
			record := []string{
				strconv.Itoa(row.State),
				string(cell.Section),
				cell.Column,
				cell.Raw,
				cell.Class.Category.String(),
				cell.Detail(),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return b.Bytes(), nil
}
