package result

import "strings"

// ActionTag is the display category of a trace action
type ActionTag string

const (
	TagShift  ActionTag = "shift"
	TagReduce ActionTag = "reduce"
	TagAccept ActionTag = "accept"
	TagError  ActionTag = "error"
	TagOther  ActionTag = "other"
)

// ParseActionTag tags an action description by substring. The first match
// in the order shift, reduce, accept, error wins.
func ParseActionTag(action string) ActionTag {
	a := strings.ToLower(action)
	switch {
	case strings.Contains(a, "shift"):
		return TagShift
	case strings.Contains(a, "reduce"):
		return TagReduce
	case strings.Contains(a, "accept"):
		return TagAccept
	case strings.Contains(a, "error"):
		return TagError
	default:
		return TagOther
	}
}
