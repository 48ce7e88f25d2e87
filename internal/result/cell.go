package result

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind is the decoded variant of a table cell value
type CellKind int

const (
	CellEmpty CellKind = iota
	CellAccept
	CellShift
	CellReduce
	CellGoto
)

func (k CellKind) String() string {
	switch k {
	case CellAccept:
		return "accept"
	case CellShift:
		return "shift"
	case CellReduce:
		return "reduce"
	case CellGoto:
		return "goto"
	default:
		return "empty"
	}
}

// Cell is one parse-table entry. Raw keeps the text the service sent;
// Target is the parsed state or rule number, -1 when there is none.
type Cell struct {
	Kind   CellKind
	Target int
	Raw    string
}

// ParseCell decodes a raw cell value. "acc" is accept, a leading "s" is a
// shift, a leading "r" is a reduce, anything else non-empty is a goto.
func ParseCell(raw string) Cell {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Cell{Kind: CellEmpty, Target: -1}
	case raw == "acc":
		return Cell{Kind: CellAccept, Target: -1, Raw: raw}
	case strings.HasPrefix(raw, "s"):
		return Cell{Kind: CellShift, Target: atoiOr(raw[1:], -1), Raw: raw}
	case strings.HasPrefix(raw, "r"):
		return Cell{Kind: CellReduce, Target: atoiOr(raw[1:], -1), Raw: raw}
	default:
		return Cell{Kind: CellGoto, Target: atoiOr(raw, -1), Raw: raw}
	}
}

// IsEmpty reports whether the cell has no value
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the raw text of the cell
func (c Cell) String() string {
	return c.Raw
}

// MarshalJSON writes the raw value so reports round-trip the service text
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Raw)
}

// UnmarshalJSON accepts a string, a number, an action tuple or null
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw actionText
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	*c = ParseCell(string(raw))
	return nil
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
