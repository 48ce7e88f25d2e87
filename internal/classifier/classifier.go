// Package classifier maps parse-table cells to display categories and binds
// conflict records to their (state, terminal) coordinates.
package classifier

import (
	"strings"

	"github.com/yildizm/lrview/internal/result"
)

// Category is the display class of a table cell
type Category int

const (
	Empty Category = iota
	Accept
	Shift
	Reduce
	Goto
	Conflict
)

// Categories lists every category in legend order
var Categories = []Category{Shift, Reduce, Accept, Goto, Conflict, Empty}

func (c Category) String() string {
	switch c {
	case Accept:
		return "accept"
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Goto:
		return "goto"
	case Conflict:
		return "conflict"
	default:
		return "empty"
	}
}

// Meaning is the one-line legend text for the category
func (c Category) Meaning() string {
	switch c {
	case Accept:
		return "input accepted"
	case Shift:
		return "push the terminal and move to state N"
	case Reduce:
		return "reduce by rule N"
	case Goto:
		return "move to state N after a reduction"
	case Conflict:
		return "two competing actions for the same lookahead"
	default:
		return "no action (syntax error)"
	}
}

// Classification is the result of classifying one cell. Conflict is set
// only when Category is Conflict.
type Classification struct {
	Category Category
	Conflict *result.Conflict
}

// Lookup finds the conflict recorded at a coordinate
type Lookup interface {
	Lookup(state int, terminal string) (*result.Conflict, bool)
}

// Classify classifies an action cell. A conflict at (state, symbol) wins
// over the cell value.
func Classify(cell result.Cell, state int, symbol string, conflicts Lookup) Classification {
	if conflicts != nil {
		if c, ok := conflicts.Lookup(state, symbol); ok {
			return Classification{Category: Conflict, Conflict: c}
		}
	}
	return Classification{Category: fromKind(cell.Kind)}
}

// ClassifyRaw classifies a raw cell string against a conflict list
func ClassifyRaw(raw string, state int, symbol string, conflicts []result.Conflict) Classification {
	return Classify(result.ParseCell(raw), state, symbol, NewIndex(conflicts))
}

// ClassifyGoto classifies a goto cell by value presence only. Conflicts are
// never consulted for goto cells.
func ClassifyGoto(cell result.Cell) Classification {
	if strings.TrimSpace(cell.Raw) == "" {
		return Classification{Category: Empty}
	}
	return Classification{Category: Goto}
}

func fromKind(k result.CellKind) Category {
	switch k {
	case result.CellAccept:
		return Accept
	case result.CellShift:
		return Shift
	case result.CellReduce:
		return Reduce
	case result.CellGoto:
		return Goto
	default:
		return Empty
	}
}
