// Package reconcile folds confirmed mutations into a client-held collection
// without refetching it. Every function returns a new collection and leaves
// its input untouched.
package reconcile

// Identifiable is any entity addressed by a stable id.
type Identifiable interface {
	GetID() string
}

// Collection is an ordered list of entities plus the entity currently selected for editing.
type Collection[T Identifiable] struct {
	Items    []T `json:"items"`
	Selected *T  `json:"selected,omitempty"`
}

// New builds a collection with no selection.
func New[T Identifiable](items []T) Collection[T] {
	return Collection[T]{Items: clone(items)}
}

// ApplyCreate appends item, keeping the existing order.
func ApplyCreate[T Identifiable](c Collection[T], item T) Collection[T] {
	items := make([]T, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	items = append(items, item)
	return Collection[T]{Items: items, Selected: refresh(c.Selected, item)}
}

// ApplyUpdate replaces the element with the same id in place. An element
// missing from the collection is appended, so the last response wins.
func ApplyUpdate[T Identifiable](c Collection[T], item T) Collection[T] {
	idx := IndexOf(c, item.GetID())
	if idx < 0 {
		return ApplyCreate(c, item)
	}
	items := clone(c.Items)
	items[idx] = item
	return Collection[T]{Items: items, Selected: refresh(c.Selected, item)}
}

// ApplyDelete removes the element with the given id and clears a matching selection.
func ApplyDelete[T Identifiable](c Collection[T], id string) Collection[T] {
	items := make([]T, 0, len(c.Items))
	for _, it := range c.Items {
		if it.GetID() != id {
			items = append(items, it)
		}
	}
	selected := copyPtr(c.Selected)
	if selected != nil && (*selected).GetID() == id {
		selected = nil
	}
	return Collection[T]{Items: items, Selected: selected}
}

// Select points the selection at the element with id. An unknown id clears it.
func Select[T Identifiable](c Collection[T], id string) Collection[T] {
	next := Collection[T]{Items: clone(c.Items)}
	if idx := IndexOf(c, id); idx >= 0 {
		item := c.Items[idx]
		next.Selected = &item
	}
	return next
}

// Replace swaps in a freshly loaded list. The selection survives when its id is still present.
func Replace[T Identifiable](c Collection[T], items []T) Collection[T] {
	next := Collection[T]{Items: clone(items)}
	if c.Selected != nil {
		return Select(next, (*c.Selected).GetID())
	}
	return next
}

// IndexOf returns the position of id, or -1.
func IndexOf[T Identifiable](c Collection[T], id string) int {
	for i, it := range c.Items {
		if it.GetID() == id {
			return i
		}
	}
	return -1
}

func refresh[T Identifiable](selected *T, item T) *T {
	if selected == nil {
		return nil
	}
	if (*selected).GetID() == item.GetID() {
		return &item
	}
	return copyPtr(selected)
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clone[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
