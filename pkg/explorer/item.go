// Package explorer owns the folder/note filing tree. The forest is an
// ordered sequence of root items; folders own their children exclusively.
// Every mutation produces a new forest snapshot and leaves its input intact.
package explorer

import (
	"encoding/json"
	"fmt"
)

// Kind categorizes the two item variants in the explorer tree.
type Kind string

const (
	KindNote   Kind = "note"
	KindFolder Kind = "folder"
)

// Item is a single node in the explorer tree: a note or a folder.
// Content is only meaningful for notes, Children only for folders.
type Item struct {
	ID       string
	Name     string
	Kind     Kind
	ParentID *string // nil = root level
	Pinned   bool
	Content  string
	Children []Item
}

type noteJSON struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Kind     Kind    `json:"type"`
	ParentID *string `json:"parentId"`
	Pinned   bool    `json:"pinned"`
	Content  string  `json:"content"`
}

type folderJSON struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Kind     Kind    `json:"type"`
	ParentID *string `json:"parentId"`
	Pinned   bool    `json:"pinned"`
	Children []Item  `json:"children"`
}

// MarshalJSON emits the tagged document form: notes carry "content", folders
// carry "children" (present even when empty).
func (it Item) MarshalJSON() ([]byte, error) {
	switch it.Kind {
	case KindNote:
		return json.Marshal(noteJSON{it.ID, it.Name, it.Kind, it.ParentID, it.Pinned, it.Content})
	case KindFolder:
		children := it.Children
		if children == nil {
			children = []Item{}
		}
		return json.Marshal(folderJSON{it.ID, it.Name, it.Kind, it.ParentID, it.Pinned, children})
	default:
		return nil, fmt.Errorf("marshal item %s: unknown kind %q", it.ID, it.Kind)
	}
}

// rawItem accepts either variant. Pinned is a pointer so records written
// before the pinned flag existed default to true on load.
type rawItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     Kind      `json:"type"`
	ParentID *string   `json:"parentId"`
	Pinned   *bool     `json:"pinned"`
	Content  string    `json:"content"`
	Children []rawItem `json:"children"`
}

func (raw rawItem) item() Item {
	it := Item{
		ID:       raw.ID,
		Name:     raw.Name,
		Kind:     raw.Kind,
		ParentID: raw.ParentID,
		Pinned:   true,
		Content:  raw.Content,
	}
	if raw.Pinned != nil {
		it.Pinned = *raw.Pinned
	}
	if raw.Kind == KindFolder {
		it.Children = make([]Item, 0, len(raw.Children))
		for _, child := range raw.Children {
			it.Children = append(it.Children, child.item())
		}
	}
	return it
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var raw rawItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*it = raw.item()
	return nil
}

// clone deep-copies an item so mutations never alias a prior snapshot.
func (it Item) clone() Item {
	out := it
	if it.Children != nil {
		out.Children = make([]Item, len(it.Children))
		for i, child := range it.Children {
			out.Children[i] = child.clone()
		}
	}
	return out
}
