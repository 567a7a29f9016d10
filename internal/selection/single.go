package selection

// Single is a nullable single-entity selection.
type Single[T Keyed] struct {
	value *T
}

// NewSingle returns a selection holding v, or an empty one when v is nil.
func NewSingle[T Keyed](v *T) Single[T] {
	if v == nil {
		return Single[T]{}
	}
	c := *v
	return Single[T]{value: &c}
}

// Select applies item with toggle semantics: choosing the current item
// clears the selection, any other item replaces it.
func (s *Single[T]) Select(item T) (cleared bool) {
	if s.value != nil && (*s.value).Key() == item.Key() {
		s.value = nil
		return true
	}
	s.value = &item
	return false
}

// Value returns the selected item.
func (s Single[T]) Value() (T, bool) {
	if s.value == nil {
		var zero T
		return zero, false
	}
	return *s.value, true
}

// Ptr returns a copy of the selected item or nil.
func (s Single[T]) Ptr() *T {
	if s.value == nil {
		return nil
	}
	c := *s.value
	return &c
}

// IsSelected reports whether id is the selected entity.
func (s Single[T]) IsSelected(id int) bool {
	return s.value != nil && (*s.value).Key() == id
}

// Clear empties the selection.
func (s *Single[T]) Clear() {
	s.value = nil
}

// Empty reports whether nothing is selected.
func (s Single[T]) Empty() bool {
	return s.value == nil
}
