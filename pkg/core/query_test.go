package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func queryNotes() []Note {
	return []Note{
		{ID: "1", Title: "Groceries", Content: "milk", Tags: []string{"a", "b"}},
		{ID: "2", Title: "Todo", Content: "call the grocer", Tags: []string{"work/urgent"}},
		{ID: "3", Title: "Ideas", Tags: []string{"b"}},
	}
}

func ids(notes []Note) []string {
	out := []string{}
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestQuery_Text(t *testing.T) {
	notes := queryNotes()

	q := Query{Text: "gro"}
	assert.True(t, q.Matches(notes[0]), "title match is case-insensitive")
	assert.True(t, q.Matches(notes[1]), "content matches too")
	assert.False(t, q.Matches(notes[2]))

	titleOnly := Query{Text: "GROCERIES"}
	assert.True(t, titleOnly.Matches(notes[0]))
	assert.False(t, titleOnly.Matches(Note{Title: "Todo"}))

	assert.True(t, Query{}.Matches(Note{Title: "anything"}))
}

func TestQuery_TagsAreConjunctive(t *testing.T) {
	n := Note{Title: "x", Tags: []string{"a", "b"}}

	assert.True(t, Query{Tags: []string{"a"}}.Matches(n))
	assert.True(t, Query{Tags: []string{"a", "b"}}.Matches(n))
	assert.False(t, Query{Tags: []string{"a", "c"}}.Matches(n))
	assert.True(t, Query{Tags: nil}.Matches(n))
	assert.False(t, Query{Tags: []string{"a"}}.Matches(Note{Title: "untagged"}))
}

func TestQuery_TagGlobs(t *testing.T) {
	notes := queryNotes()

	assert.Equal(t, []string{"2"}, ids(Filter(notes, Query{TagGlobs: []string{"work/*"}})))
	assert.Empty(t, Filter(notes, Query{TagGlobs: []string{"[bad"}}))
}

func TestFilter_CombinesPredicates(t *testing.T) {
	notes := queryNotes()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"empty", Query{}, []string{"1", "2", "3"}},
		{"text", Query{Text: "gro"}, []string{"1", "2"}},
		{"tag", Query{Tags: []string{"b"}}, []string{"1", "3"}},
		{"text and tag", Query{Text: "gro", Tags: []string{"b"}}, []string{"1"}},
		{"nothing", Query{Text: "zzz"}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ids(Filter(notes, tc.q))); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllTags(t *testing.T) {
	if diff := cmp.Diff([]string{"a", "b", "work/urgent"}, AllTags(queryNotes())); diff != "" {
		t.Errorf("AllTags() mismatch (-want +got):\n%s", diff)
	}
}

func TestRank(t *testing.T) {
	notes := queryNotes()

	ranked := Rank(notes, "grcr")
	assert.NotEmpty(t, ranked)
	for _, n := range ranked {
		assert.NotEqual(t, "3", n.ID)
	}
	assert.Equal(t, notes, Rank(notes, ""))
}
