package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/tuner/internal/navparams"
)

func TestDeriveQuery(t *testing.T) {
	tests := []struct {
		name     string
		location string
		enabled  bool
		want     Query
	}{
		{"defaults", "", true, Query{}},
		{"search only", "search?search=jazz", true, Query{SearchText: "jazz"}},
		{"sort enabled", "search?sort_by_distance=true", true, Query{SortByDistance: true}},
		{"sort gated by capability", "search?search=x&sort_by_distance=true", false, Query{SearchText: "x"}},
		{"malformed flag", "search?sort_by_distance=maybe", true, Query{}},
		{"whitespace kept", "search?search=+jazz+", true, Query{SearchText: " jazz "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveQuery(navparams.Parse(tt.location), capability(tt.enabled))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveQuery_NilCollaborators(t *testing.T) {
	require.Equal(t, Query{}, DeriveQuery(nil, nil))
	q := DeriveQuery(newMemParams(ParamSortByDistance, "true"), nil)
	require.False(t, q.SortByDistance)
}

func TestQueryBlank(t *testing.T) {
	for _, text := range []string{"", " ", "  \n\t ", "\r\n"} {
		require.True(t, Query{SearchText: text}.Blank(), "%q should be blank", text)
	}
	for _, text := range []string{"a", " a ", "\u00a0", "\v"} {
		require.False(t, Query{SearchText: text}.Blank(), "%q should not be blank", text)
	}
}
