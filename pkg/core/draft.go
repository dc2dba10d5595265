package core

import (
	"strings"

	"github.com/google/uuid"
)

// NewTodo returns an unchecked checklist item with a fresh id.
func NewTodo(text string) TodoItem {
	return TodoItem{ID: uuid.NewString(), Text: text}
}

// CleanTodos drops checklist items with blank text.
// It returns nil when nothing is left so the note carries no checklist.
func CleanTodos(todos []TodoItem) []TodoItem {
	var out []TodoItem
	for _, t := range todos {
		if strings.TrimSpace(t.Text) != "" {
			out = append(out, t)
		}
	}
	return out
}

// CleanTags trims tags and drops blanks and duplicates, keeping first occurrence order.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Clean returns a copy of d with its checklist and tags normalised the way
// the note form submits them.
func (d Draft) Clean() Draft {
	d.Todos = CleanTodos(d.Todos)
	d.Tags = CleanTags(d.Tags)
	return d
}
