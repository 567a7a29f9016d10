package selection

// Multi is an insertion-ordered set of entities keyed by id.
type Multi[T Keyed] struct {
	items []T
}

// NewMulti builds a set from items, dropping duplicate ids.
func NewMulti[T Keyed](items []T) Multi[T] {
	var m Multi[T]
	for _, item := range items {
		if !m.Contains(item.Key()) {
			m.items = append(m.items, item)
		}
	}
	return m
}

// Toggle adds item when absent and removes it when present.
func (m *Multi[T]) Toggle(item T) (added bool) {
	if m.Remove(item.Key()) {
		return false
	}
	m.items = append(m.items, item)
	return true
}

// Remove drops the entity with id. It reports whether anything was removed.
func (m *Multi[T]) Remove(id int) bool {
	for i, item := range m.items {
		if item.Key() == id {
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether id is selected.
func (m Multi[T]) Contains(id int) bool {
	for _, item := range m.items {
		if item.Key() == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the selected entities in insertion order.
func (m Multi[T]) Items() []T {
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of selected entities.
func (m Multi[T]) Len() int {
	return len(m.items)
}

// Clear empties the set.
func (m *Multi[T]) Clear() {
	m.items = nil
}
