package scope

// LoopContext is the generator's record for one enclosing loop.
type LoopContext struct {
	Label string
	meta  map[string]string
}

// Set attaches codegen metadata to the loop.
func (l *LoopContext) Set(key, value string) {
	if l.meta == nil {
		l.meta = make(map[string]string)
	}
	l.meta[key] = value
}

// Get reads metadata previously attached with Set.
func (l *LoopContext) Get(key string) (string, bool) {
	v, ok := l.meta[key]
	return v, ok
}

// PushWhile opens a loop context in this scope only; loops are not
// visible through block boundaries.
func (s *Scope) PushWhile() *LoopContext {
	ctx := &LoopContext{}
	s.loops = append(s.loops, ctx)
	return ctx
}

// PopWhile closes the innermost loop context. An unmatched pop is a
// generator bug and panics with ErrLoopUnderflow.
func (s *Scope) PopWhile() *LoopContext {
	n := len(s.loops)
	if n == 0 {
		s.violate("pop_while", ErrLoopUnderflow, "")
	}
	ctx := s.loops[n-1]
	s.loops[n-1] = nil
	s.loops = s.loops[:n-1]
	return ctx
}

// InWhile reports whether a loop is open in this scope.
func (s *Scope) InWhile() bool { return len(s.loops) > 0 }

// CurrentWhile returns the innermost loop context or nil.
func (s *Scope) CurrentWhile() *LoopContext {
	if len(s.loops) == 0 {
		return nil
	}
	return s.loops[len(s.loops)-1]
}

// LoopDepth reports how many loops are open in this scope.
func (s *Scope) LoopDepth() int { return len(s.loops) }
