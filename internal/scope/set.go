package scope

// orderedSet keeps first-insertion order and ignores duplicates.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

// add inserts name and reports whether it was new.
func (s *orderedSet) add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.items = append(s.items, name)
	return true
}

func (s *orderedSet) has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *orderedSet) len() int { return len(s.items) }

func (s *orderedSet) list() []string {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
