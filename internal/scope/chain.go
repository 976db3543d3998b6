package scope

import (
	"strconv"
	"strings"

	"opalscope/internal/trace"
)

// Identify returns the identity name of id, assigning the next
// compilation-wide name on first use. The name is stable for the life of
// the scope.
func (t *Tree) Identify(id ID) string {
	sc := t.Get(id)
	if sc == nil {
		return ""
	}
	return t.identify(sc)
}

func (t *Tree) identify(sc *Scope) string {
	if sc.identity == "" {
		t.identities++
		sc.identity = t.dialect.Names.Identity + strconv.FormatUint(t.identities, 10)
		trace.Point(t.tracer, trace.ScopeOp, "identify", sc.span.ID(), sc.identity)
	}
	return sc.identity
}

// BlockOwner returns the scope that block and break flags raised at id land
// on: id itself, or its nearest ancestor that is not an iter. An iter with
// no parent owns its own flags.
func (t *Tree) BlockOwner(id ID) ID {
	sc := t.Get(id)
	for sc != nil && sc.Kind == KindIter && sc.Parent.IsValid() {
		sc = t.Get(sc.Parent)
	}
	if sc == nil {
		return NoID
	}
	return sc.id
}

// UsesBlock marks that code at id consumes the block passed to its owning
// method. The flag is recorded on BlockOwner(id), which is also identified.
// It returns the owner.
func (t *Tree) UsesBlock(id ID) ID {
	owner := t.Get(t.BlockOwner(id))
	if owner == nil {
		return NoID
	}
	owner.usesBlock = true
	t.identify(owner)
	trace.Point(t.tracer, trace.ScopeOp, "uses_block", owner.span.ID(), strconv.FormatUint(uint64(id), 10))
	return owner.id
}

// CatchesBreak marks that a break inside the iterator at id must be
// intercepted at the call site. The flag is recorded on BlockOwner(id).
func (t *Tree) CatchesBreak(id ID) ID {
	owner := t.Get(t.BlockOwner(id))
	if owner == nil {
		return NoID
	}
	owner.catchesBreak = true
	trace.Point(t.tracer, trace.ScopeOp, "catches_break", owner.span.ID(), strconv.FormatUint(uint64(id), 10))
	return owner.id
}

// MethodID returns the name of the method whose body encloses id, looking
// through iter scopes. It is absent at top level and in class bodies.
func (t *Tree) MethodID(id ID) (string, bool) {
	for sc := t.Get(id); sc != nil; sc = t.Get(sc.Parent) {
		switch sc.Kind {
		case KindDef:
			return sc.methodID, sc.methodID != ""
		case KindIter:
			continue
		default:
			return "", false
		}
	}
	return "", false
}

// IdentifyDef identifies id and every iter between it and the enclosing
// def, and the def itself. A parentless iter and any non-def kind end the
// walk without being identified.
func (t *Tree) IdentifyDef(id ID) {
	for sc := t.Get(id); sc != nil; sc = t.Get(sc.Parent) {
		switch sc.Kind {
		case KindIter:
			if !sc.Parent.IsValid() {
				return
			}
			t.identify(sc)
		case KindDef:
			t.identify(sc)
			return
		default:
			return
		}
	}
}

// SuperChain is what a super call issued at some scope needs to find its
// method at runtime.
type SuperChain struct {
	Chain  []string // identities of the iters crossed, innermost first
	Def    string   // identity of the enclosing def, empty if none
	Method string   // name of the enclosing def, empty if none
}

// SuperChain walks from id through enclosing iters, identifying each, and
// stops at the first def (identified and reported) or at any other kind.
func (t *Tree) SuperChain(id ID) SuperChain {
	var out SuperChain
	sc := t.Get(id)
	for sc != nil {
		switch sc.Kind {
		case KindIter:
			out.Chain = append(out.Chain, t.identify(sc))
			sc = t.Get(sc.Parent)
		case KindDef:
			out.Def = t.identify(sc)
			out.Method = sc.methodID
			sc = nil
		default:
			sc = nil
		}
	}
	if start := t.Get(id); start != nil {
		trace.Point(t.tracer, trace.ScopeOp, "super_chain", start.span.ID(), out.String())
	}
	return out
}

// JS renders the chain as the three runtime arguments: the identity
// array, the def identity and the quoted method name, using null for
// absent values.
func (c SuperChain) JS() (chain, def, method string) {
	chain = "[" + strings.Join(c.Chain, ", ") + "]"
	def, method = "null", "null"
	if c.Def != "" {
		def = c.Def
	}
	if c.Method != "" {
		method = "'" + c.Method + "'"
	}
	return chain, def, method
}

func (c SuperChain) String() string {
	chain, def, method := c.JS()
	return chain + ", " + def + ", " + method
}
