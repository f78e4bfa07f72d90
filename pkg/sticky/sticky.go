// Package sticky owns the freestanding sticky-note cards, distinct from
// explorer notes. Operations are copy-on-write.
package sticky

import (
	"math/rand"

	"github.com/google/uuid"
)

// Note is a single sticky card.
type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// Palette is the fixed set of pastel card colors. A color is drawn uniformly
// at random at creation and never changes except through an explicit edit.
var Palette = []string{
	"#FFB7B2", "#FFDAC1", "#E2F0CB", "#B5EAD7", "#C7CEEA",
	"#FF9AA2", "#FFB3BA", "#FFFFD8", "#A0E7E5", "#B28DFF",
}

func randomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

// Patch carries the fields of an update; nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
	Color   *string
}

// List is the ordered sticky-note collection.
type List []Note

// Add appends a new empty note with a random palette color and returns the
// updated list.
func (l List) Add() List {
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return append(out, Note{ID: uuid.NewString(), Color: randomColor()})
}

// Update merges the patch into the matching note. No-op if absent.
func (l List) Update(id string, patch Patch) List {
	out := make(List, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if patch.Title != nil {
			out[i].Title = *patch.Title
		}
		if patch.Content != nil {
			out[i].Content = *patch.Content
		}
		if patch.Color != nil {
			out[i].Color = *patch.Color
		}
	}
	return out
}

// Delete removes the matching note. No-op if absent.
func (l List) Delete(id string) List {
	out := make(List, 0, len(l))
	for _, n := range l {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// Find returns the note with the given id, or nil.
func (l List) Find(id string) *Note {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}
