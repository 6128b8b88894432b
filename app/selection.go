package app

// selection is an optional cursor into a bounded list. The zero value
// is "nothing selected", which is only a legal resting state while the
// backing list is empty or untouched.
type selection struct {
	index int
	valid bool
}

// Selected returns the cursor position and whether one exists.
func (s *selection) Selected() (int, bool) {
	return s.index, s.valid
}

// Select sets the cursor. Negative indices clear it.
func (s *selection) Select(i int) {
	if i < 0 {
		s.Clear()
		return
	}
	s.index = i
	s.valid = true
}

// Clear unsets the cursor.
func (s *selection) Clear() {
	s.index = 0
	s.valid = false
}

// Move shifts the cursor by delta within [0, length-1] without
// wrapping. The first move on an unset cursor lands on index 0.
// Returns true when the cursor position changed.
func (s *selection) Move(delta, length int) bool {
	if length <= 0 {
		return false
	}
	if !s.valid {
		s.Select(0)
		return true
	}
	next := s.index + delta
	if next < 0 || next >= length {
		return false
	}
	s.index = next
	return true
}

// Clamp pulls an out-of-range cursor back inside [0, length-1], or
// clears it when the list is empty.
func (s *selection) Clamp(length int) {
	if length <= 0 {
		s.Clear()
		return
	}
	if s.valid && s.index >= length {
		s.index = length - 1
	}
}
