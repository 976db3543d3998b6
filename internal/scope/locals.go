package scope

// AddLocal declares name in this scope. Repeated names keep their first
// position.
func (s *Scope) AddLocal(name string) { s.locals.add(name) }

// AddArg records a parameter. Parameters take part in local lookup but are
// declared by the parameter list, not by the preamble.
func (s *Scope) AddArg(name string) { s.args.add(name) }

// AddIvar records an instance variable referenced by the body.
func (s *Scope) AddIvar(name string) { s.ivars.add(name) }

func (s *Scope) Locals() []string { return s.locals.list() }

func (s *Scope) Args() []string { return s.args.list() }

func (s *Scope) Ivars() []string { return s.ivars.list() }

func (s *Scope) hasOwn(name string) bool {
	return s.locals.has(name) || s.args.has(name)
}

// HasLocal reports whether name is a local or argument visible from id.
// Iter scopes see through to their parent until a non-iter scope answers.
func (t *Tree) HasLocal(id ID, name string) bool {
	for sc := t.Get(id); sc != nil; sc = t.Get(sc.Parent) {
		if sc.hasOwn(name) {
			return true
		}
		if sc.Kind != KindIter {
			return false
		}
	}
	return false
}

// DeclareLocal adds name to id unless it is already visible, so an
// assignment inside a block to an outer variable captures it instead of
// shadowing it. It reports whether a new declaration was made.
func (t *Tree) DeclareLocal(id ID, name string) bool {
	sc := t.Get(id)
	if sc == nil || t.HasLocal(id, name) {
		return false
	}
	sc.AddLocal(name)
	return true
}
