package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_JSONLayout(t *testing.T) {
	n := Note{
		ID:        "n1",
		Title:     "Groceries",
		CreatedAt: refNow,
		ExpiresAt: At(refNow.Add(time.Hour)),
		Todos:     []TodoItem{{ID: "t1", Text: "milk"}},
	}

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(refNow.UnixMilli()), raw["createdAt"])
	assert.Equal(t, float64(refNow.Add(time.Hour).UnixMilli()), raw["expiresAt"])
	assert.Equal(t, []any{}, raw["tags"])
	assert.NotContains(t, raw, "content")
}

func TestNote_DecodesLegacyRecord(t *testing.T) {
	// Written before tags existed; completed omitted on the todo.
	legacy := `[{"id":"a","title":"Old","createdAt":1741597200000,"expiresAt":1741683600000,"todos":[{"id":"t","text":"x"}]}]`

	var notes []Note
	require.NoError(t, json.Unmarshal([]byte(legacy), &notes))
	require.Len(t, notes, 1)

	n := notes[0]
	assert.Equal(t, []string{}, n.Tags)
	assert.False(t, n.Todos[0].Completed)
	at, ok := n.ExpiresAt.Time()
	require.True(t, ok)
	assert.Equal(t, int64(1741683600000), at.UnixMilli())
}

func TestNote_NeverRoundTrip(t *testing.T) {
	n := Note{ID: "n", Title: "t", CreatedAt: refNow, ExpiresAt: Never(), Tags: []string{"a"}}

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(refNow.AddDate(100, 0, 0).UnixMilli()), raw["expiresAt"])

	var back Note
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.ExpiresAt.IsNever())
	assert.True(t, back.CreatedAt.Equal(refNow))
	assert.Equal(t, []string{"a"}, back.Tags)
}

func TestDraft_Clean(t *testing.T) {
	d := Draft{
		Title: "x",
		Todos: []TodoItem{{ID: "1", Text: "  "}, {ID: "2", Text: "real"}},
		Tags:  []string{" work ", "", "work", "home"},
	}.Clean()

	assert.Equal(t, []TodoItem{{ID: "2", Text: "real"}}, d.Todos)
	assert.Equal(t, []string{"work", "home"}, d.Tags)
	assert.Nil(t, CleanTodos([]TodoItem{{Text: ""}}))

	todo := NewTodo("buy milk")
	assert.NotEmpty(t, todo.ID)
	assert.False(t, todo.Completed)
}
