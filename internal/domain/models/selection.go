package models

// Selection is an ordered, deduplicated set of instrument codes. It is
// owned by one explorer session; consumers get copies via Codes, never
// the backing slice.
type Selection struct {
	codes []string
	index map[string]struct{}
}

// NewSelection builds a selection from the given codes, dropping
// duplicates while preserving first-seen order.
func NewSelection(codes ...string) *Selection {
	s := &Selection{index: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

// Add appends code unless it is already present. Adding a present code
// is a no-op.
func (s *Selection) Add(code string) bool {
	if code == "" {
		return false
	}
	if _, ok := s.index[code]; ok {
		return false
	}
	s.codes = append(s.codes, code)
	s.index[code] = struct{}{}
	return true
}

// Remove deletes code from the set. Removing an absent code is a no-op.
func (s *Selection) Remove(code string) bool {
	if _, ok := s.index[code]; !ok {
		return false
	}
	delete(s.index, code)
	for i, c := range s.codes {
		if c == code {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the set.
func (s *Selection) Clear() {
	s.codes = nil
	s.index = make(map[string]struct{})
}

// Contains reports whether code is selected.
func (s *Selection) Contains(code string) bool {
	_, ok := s.index[code]
	return ok
}

// Len returns the number of selected codes.
func (s *Selection) Len() int { return len(s.codes) }

// Codes returns a copy of the selected codes in insertion order.
func (s *Selection) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}
