package explorer

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Move when the item or the target folder does
// not exist. The forest is left unchanged in both cases.
var ErrNotFound = errors.New("explorer: item not found")

// Forest is the full explorer tree: root-level items and their descendants.
type Forest []Item

// Clone deep-copies the forest.
func (f Forest) Clone() Forest {
	out := make(Forest, len(f))
	for i, it := range f {
		out[i] = it.clone()
	}
	return out
}

// AddFolder appends a new empty, pinned folder at the forest root and
// returns the generated id so the caller can immediately target it.
// Folders are only ever created at root; nesting via creation is not
// supported.
func (f Forest) AddFolder() (Forest, string) {
	id := uuid.NewString()
	folder := Item{
		ID:       id,
		Name:     "Unnamed Folder",
		Kind:     KindFolder,
		ParentID: nil,
		Pinned:   true,
		Children: []Item{},
	}
	return append(f.Clone(), folder), id
}

// AddNote appends a new empty, unpinned note into the named folder's
// children. If parentID does not resolve to an existing folder the forest
// is returned unchanged.
func (f Forest) AddNote(parentID string) Forest {
	note := Item{
		ID:       uuid.NewString(),
		Name:     "New Note",
		Kind:     KindNote,
		ParentID: &parentID,
		Pinned:   false,
	}
	return mapItems(f.Clone(), func(it Item) Item {
		if it.ID == parentID && it.Kind == KindFolder {
			it.Children = append(it.Children, note)
		}
		return it
	})
}

// Rename replaces the name of the item with the given id, wherever it
// appears. No-op if the id does not resolve. The store accepts any string;
// blank-name rejection is the caller's concern.
func (f Forest) Rename(id, name string) Forest {
	return mapItems(f.Clone(), func(it Item) Item {
		if it.ID == id {
			it.Name = name
		}
		return it
	})
}

// SetContent replaces the body of the note with the given id. No-op if the
// id does not resolve to a note.
func (f Forest) SetContent(id, content string) Forest {
	return mapItems(f.Clone(), func(it Item) Item {
		if it.ID == id && it.Kind == KindNote {
			it.Content = content
		}
		return it
	})
}

// TogglePin flips the pinned flag on the matching item, leaving the rest of
// the tree untouched.
func (f Forest) TogglePin(id string) Forest {
	return mapItems(f.Clone(), func(it Item) Item {
		if it.ID == id {
			it.Pinned = !it.Pinned
		}
		return it
	})
}

// Delete removes the item with the given id from wherever it appears. A
// deleted folder takes its entire subtree with it; children are never
// promoted.
func (f Forest) Delete(id string) Forest {
	removed, _, _ := removeItem(f.Clone(), id)
	return removed
}

// Move relocates an item to become the last child of the folder named by
// newParentID, or a root item when newParentID is nil. Folders are never
// nested by this operation: moving a folder into another folder leaves the
// forest unchanged. Items at root are re-pinned so they stay reachable from
// the sidebar. If either the item or the target folder does not exist, the
// forest is returned unchanged and ErrNotFound is reported.
func (f Forest) Move(id string, newParentID *string) (Forest, error) {
	pruned, moved, found := removeItem(f.Clone(), id)
	if !found {
		return f, ErrNotFound
	}

	if moved.Kind == KindFolder && newParentID != nil {
		return f, nil
	}

	if newParentID == nil {
		moved.ParentID = nil
		moved.Pinned = true
		return append(pruned, moved), nil
	}

	if target := pruned.Find(*newParentID); target == nil || target.Kind != KindFolder {
		return f, ErrNotFound
	}

	moved.ParentID = newParentID
	return mapItems(pruned, func(it Item) Item {
		if it.ID == *newParentID {
			it.Children = append(it.Children, moved)
		}
		return it
	}), nil
}

// Find returns the first item matching id in pre-order depth-first order,
// or nil. Ids are unique across the forest, so first match is unambiguous.
func (f Forest) Find(id string) *Item {
	for i := range f {
		if f[i].ID == id {
			return &f[i]
		}
		if found := Forest(f[i].Children).Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Count reports the total number of items in the forest, nested included.
func (f Forest) Count() int {
	n := 0
	for _, it := range f {
		n += 1 + Forest(it.Children).Count()
	}
	return n
}

// Pinned collects every pinned item in pre-order, for the sidebar shortcut
// list.
func (f Forest) Pinned() []Item {
	var out []Item
	for _, it := range f {
		if it.Pinned {
			out = append(out, it)
		}
		out = append(out, Forest(it.Children).Pinned()...)
	}
	return out
}

// Normalize repairs structural invariants after load: every child's
// ParentID is set to its owning folder's id, root items' to nil, notes carry
// no children and folders always carry a child list.
func (f Forest) Normalize() Forest {
	out := f.Clone()
	normalizeItems(out, nil)
	return out
}

func normalizeItems(items []Item, parentID *string) {
	for i := range items {
		items[i].ParentID = parentID
		switch items[i].Kind {
		case KindFolder:
			if items[i].Children == nil {
				items[i].Children = []Item{}
			}
			id := items[i].ID
			normalizeItems(items[i].Children, &id)
		default:
			items[i].Children = nil
		}
	}
}

// mapItems applies fn to every item in pre-order, rebuilding in place. The
// input must already be an unaliased copy.
func mapItems(items Forest, fn func(Item) Item) Forest {
	for i := range items {
		items[i] = fn(items[i])
		if len(items[i].Children) > 0 {
			items[i].Children = mapItems(items[i].Children, fn)
		}
	}
	return items
}

// removeItem filters the first item matching id out of the tree, returning
// the pruned tree, the removed item, and whether a match was found.
func removeItem(items Forest, id string) (Forest, Item, bool) {
	var removed Item
	found := false
	out := items[:0]
	for _, it := range items {
		if !found && it.ID == id {
			removed = it
			found = true
			continue
		}
		if !found && len(it.Children) > 0 {
			var childRemoved Item
			var childFound bool
			it.Children, childRemoved, childFound = removeItem(it.Children, id)
			if childFound {
				removed = childRemoved
				found = true
			}
		}
		out = append(out, it)
	}
	return out, removed, found
}
