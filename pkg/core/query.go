package core

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sahilm/fuzzy"
)

// Query selects notes from an already loaded list.
// The zero Query matches every note.
type Query struct {
	// Text must appear in the title or content, ignoring case.
	Text string
	// Tags must all be present on the note.
	Tags []string
	// TagGlobs must each match at least one tag (e.g. "work/*").
	TagGlobs []string
}

// Matches reports whether n satisfies every part of the query.
func (q Query) Matches(n Note) bool {
	return q.matchesText(n) && q.matchesTags(n) && q.matchesGlobs(n)
}

func (q Query) matchesText(n Note) bool {
	if q.Text == "" {
		return true
	}
	needle := strings.ToLower(q.Text)
	return strings.Contains(strings.ToLower(n.Title), needle) ||
		strings.Contains(strings.ToLower(n.Content), needle)
}

func (q Query) matchesTags(n Note) bool {
	for _, tag := range q.Tags {
		if !n.HasTag(tag) {
			return false
		}
	}
	return true
}

func (q Query) matchesGlobs(n Note) bool {
	for _, pattern := range q.TagGlobs {
		matched := false
		for _, tag := range n.Tags {
			// A malformed pattern matches nothing.
			if ok, err := doublestar.Match(pattern, tag); err == nil && ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Filter returns the notes matching q, keeping their order.
func Filter(notes []Note, q Query) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if q.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

// AllTags returns the distinct tags used by notes, sorted.
func AllTags(notes []Note) []string {
	seen := make(map[string]struct{})
	for _, n := range notes {
		for _, t := range n.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Rank orders the notes that fuzzily match pattern, best match first.
// An empty pattern returns notes unchanged.
func Rank(notes []Note, pattern string) []Note {
	if pattern == "" {
		return notes
	}
	haystack := make([]string, len(notes))
	for i, n := range notes {
		haystack[i] = n.Title + " " + n.Content
	}
	matches := fuzzy.Find(pattern, haystack)
	ranked := make([]Note, len(matches))
	for i, m := range matches {
		ranked[i] = notes[m.Index]
	}
	return ranked
}
