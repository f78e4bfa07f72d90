// Package todo owns the flat todo list. Operations are copy-on-write:
// each returns a new list and never mutates its input.
package todo

import "github.com/google/uuid"

// Todo is a single checklist entry. Insertion order is display order.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List is the ordered todo collection.
type List []Todo

// Add appends a new uncompleted todo and returns the updated list.
func (l List) Add(text string) List {
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return append(out, Todo{ID: uuid.NewString(), Text: text})
}

// Toggle flips the completed flag on the matching entry. No-op if absent.
func (l List) Toggle(id string) List {
	out := make(List, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
		}
	}
	return out
}

// UpdateText replaces the text of the matching entry. No-op if absent.
func (l List) UpdateText(id, text string) List {
	out := make(List, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID == id {
			out[i].Text = text
		}
	}
	return out
}

// Delete removes the matching entry. No-op if absent.
func (l List) Delete(id string) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the entry with the given id, or nil.
func (l List) Find(id string) *Todo {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}
