package classifier

import "github.com/yildizm/lrview/internal/result"

// Index is a coordinate-keyed view of a conflict list. The first record at
// a coordinate is the one returned by Lookup.
type Index struct {
	byCoord    map[result.Coordinate]*result.Conflict
	duplicates []result.Conflict
}

// NewIndex builds an index over conflicts. The slice is not retained.
func NewIndex(conflicts []result.Conflict) *Index {
	idx := &Index{byCoord: make(map[result.Coordinate]*result.Conflict, len(conflicts))}
	for i := range conflicts {
		c := conflicts[i]
		if _, seen := idx.byCoord[c.Coordinate()]; seen {
			idx.duplicates = append(idx.duplicates, c)
			continue
		}
		idx.byCoord[c.Coordinate()] = &c
	}
	return idx
}

// Lookup returns the conflict at (state, terminal)
func (i *Index) Lookup(state int, terminal string) (*result.Conflict, bool) {
	if i == nil {
		return nil, false
	}
	c, ok := i.byCoord[result.Coordinate{State: state, Terminal: terminal}]
	return c, ok
}

// Len is the number of distinct conflicting coordinates
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byCoord)
}

// Duplicates returns records that repeated an already indexed coordinate
func (i *Index) Duplicates() []result.Conflict {
	if i == nil {
		return nil
	}
	return i.duplicates
}
