package core

import (
	"encoding/json"
	"time"
)

// TodoItem is a single checklist entry attached to a note.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Note is the central entity of the domain.
// It is a short-lived piece of text with an optional checklist and tags,
// removed from every read once its expiration has passed.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	ExpiresAt Expiration
	Todos     []TodoItem
	Tags      []string
}

// Draft is a note that has not been assigned an ID or creation time yet.
type Draft struct {
	Title     string
	Content   string
	ExpiresAt Expiration
	Todos     []TodoItem
	Tags      []string
}

// Expired reports whether the note is past its expiration at now.
func (n Note) Expired(now time.Time) bool {
	return n.ExpiresAt.Passed(now)
}

// HasTag reports whether tag is present on the note.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// noteRecord is the persisted layout of a note: timestamps are milliseconds
// since the epoch and "never" is stored as a far-future sentinel.
type noteRecord struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Content   string     `json:"content,omitempty" yaml:"content,omitempty"`
	CreatedAt int64      `json:"createdAt" yaml:"createdAt"`
	ExpiresAt int64      `json:"expiresAt" yaml:"expiresAt"`
	Todos     []TodoItem `json:"todos,omitempty" yaml:"todos,omitempty"`
	Tags      []string   `json:"tags" yaml:"tags"`
}

func (n Note) record() noteRecord {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteRecord{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UnixMilli(),
		ExpiresAt: n.ExpiresAt.deadline(n.CreatedAt).UnixMilli(),
		Todos:     n.Todos,
		Tags:      tags,
	}
}

func (r noteRecord) note() Note {
	created := time.UnixMilli(r.CreatedAt)
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: created,
		ExpiresAt: ParseTimestamp(r.ExpiresAt, created),
		Todos:     r.Todos,
		Tags:      tags,
	}
}

// MarshalJSON encodes the note in the persisted collection layout.
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.record())
}

// UnmarshalJSON decodes a persisted note. Records written before tags
// existed decode with an empty tag list.
func (n *Note) UnmarshalJSON(data []byte) error {
	var r noteRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*n = r.note()
	return nil
}

// MarshalYAML encodes the note with the same field names as the JSON layout.
func (n Note) MarshalYAML() (any, error) {
	return n.record(), nil
}
