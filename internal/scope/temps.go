package scope

// NewTemp hands out a scratch variable. Queued temps are reused (most
// recently queued first) before a fresh name is minted and declared.
func (s *Scope) NewTemp() string {
	if n := len(s.free); n > 0 {
		name := s.free[n-1]
		s.free = s.free[:n-1]
		delete(s.freeSet, name)
		return name
	}

	if s.minted == nil {
		s.minted = make(map[string]struct{})
	}
	name := s.tempPrefix + s.names.next()
	for s.declaredTemp(name) {
		name = s.tempPrefix + s.names.next()
	}
	s.minted[name] = struct{}{}
	s.declareTemp(name)
	return name
}

// QueueTemp returns name to the pool. The caller must have obtained it from
// NewTemp on this scope and must not use it again until NewTemp returns it.
func (s *Scope) QueueTemp(name string) {
	if _, ok := s.minted[name]; !ok {
		s.violate("queue_temp", ErrForeignTemp, name)
	}
	if _, ok := s.freeSet[name]; ok {
		s.violate("queue_temp", ErrTempQueued, name)
	}
	if s.freeSet == nil {
		s.freeSet = make(map[string]struct{})
	}
	s.freeSet[name] = struct{}{}
	s.free = append(s.free, name)
}

// AddTemp declares a temp whose name is fixed by the caller. It never
// enters the pool.
func (s *Scope) AddTemp(name string) { s.declareTemp(name) }

// Temps lists every declared temp in declaration order.
func (s *Scope) Temps() []string {
	if len(s.temps) == 0 {
		return nil
	}
	out := make([]string, len(s.temps))
	copy(out, s.temps)
	return out
}

// FreeTemps lists queued temps, next to be reused last.
func (s *Scope) FreeTemps() []string {
	if len(s.free) == 0 {
		return nil
	}
	out := make([]string, len(s.free))
	copy(out, s.free)
	return out
}

// LiveTemps counts pooled temps currently checked out.
func (s *Scope) LiveTemps() int { return len(s.minted) - len(s.free) }

func (s *Scope) declaredTemp(name string) bool {
	_, ok := s.tempSet[name]
	return ok
}

func (s *Scope) declareTemp(name string) {
	if s.declaredTemp(name) {
		return
	}
	if s.tempSet == nil {
		s.tempSet = make(map[string]struct{})
	}
	s.tempSet[name] = struct{}{}
	s.temps = append(s.temps, name)
}
