package search

import "strings"

// Navigation parameter keys.
const (
	ParamSearch         = "search"
	ParamSortByDistance = "sort_by_distance"
)

// Query is the state that drives one assembly cycle.
type Query struct {
	SearchText     string
	SortByDistance bool
}

// ParamReader reads typed navigation parameters. The bool result reports
// whether the key was present and well formed.
type ParamReader interface {
	GetString(key string) (string, bool)
	GetBool(key string) (bool, bool)
}

// ParamStore is the navigation parameter store backing the shareable location.
type ParamStore interface {
	ParamReader
	SetParameter(key string, value any)
}

// Capability reports whether distance sorting is available.
type Capability interface {
	IsEnabled() bool
}

// DeriveQuery reads the query from params. Missing or malformed values fall
// back to an empty search and no distance sort. SortByDistance is forced off
// while the capability is disabled.
func DeriveQuery(params ParamReader, capability Capability) Query {
	var q Query
	if params == nil {
		return q
	}
	if text, ok := params.GetString(ParamSearch); ok {
		q.SearchText = text
	}
	if flag, ok := params.GetBool(ParamSortByDistance); ok {
		q.SortByDistance = flag && enabled(capability)
	}
	return q
}

// Blank reports whether the search text is empty once spaces, CR, LF and tabs
// are removed.
func (q Query) Blank() bool {
	return isBlank(q.SearchText)
}

func isBlank(s string) bool {
	return strings.Trim(s, " \r\n\t") == ""
}

func enabled(c Capability) bool {
	return c != nil && c.IsEnabled()
}
