package scope

import (
	"fmt"

	"fortio.org/safecast"

	"opalscope/internal/dialect"
	"opalscope/internal/trace"
)

// Options configures a Tree.
type Options struct {
	Dialect  *dialect.Dialect // nil selects dialect.Default
	Tracer   trace.Tracer     // nil selects trace.Nop
	Parent   uint64           // trace span the session nests under
	Capacity uint32           // arena capacity hint
}

// Tree owns every scope of one compilation together with the
// compilation-wide identity counter. It is not safe for concurrent use;
// separate compilations use separate trees.
type Tree struct {
	data       []Scope
	dialect    dialect.Dialect
	tracer     trace.Tracer
	session    *trace.Span
	identities uint64
}

// NewTree creates an empty tree.
func NewTree(opts Options) *Tree {
	capacity := opts.Capacity
	if capacity == 0 {
		capacity = 16
	}
	d := dialect.Default()
	if opts.Dialect != nil {
		d = *opts.Dialect
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Tree{
		data:    make([]Scope, 1, capacity+1), // index 0 reserved for NoID
		dialect: d,
		tracer:  tracer,
		session: trace.Begin(tracer, trace.ScopeSession, "session", opts.Parent),
	}
}

// New allocates a scope of the given kind under parent (NoID for a root)
// and returns its ID. Pointers obtained from Get before the call may be
// invalidated by it.
func (t *Tree) New(kind Kind, parent ID) ID {
	if kind == KindInvalid || kind > KindIter {
		panic(&ContractError{Op: "new", Kind: kind, Err: ErrInvalidKind})
	}
	if parent.IsValid() && t.Get(parent) == nil {
		panic(&ContractError{Op: "new", Scope: parent, Kind: kind, Err: ErrUnknownParent})
	}
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	id := ID(value)

	parentSpan := t.session.ID()
	if p := t.Get(parent); p != nil {
		parentSpan = p.span.ID()
	}
	span := trace.Begin(t.tracer, trace.ScopeConstruct, fmt.Sprintf("%s#%d", kind, id), parentSpan)

	t.data = append(t.data, Scope{
		Kind:       kind,
		Parent:     parent,
		id:         id,
		tempPrefix: t.dialect.Names.Temp,
		tracer:     t.tracer,
		span:       span,
	})
	return id
}

// Get returns the scope pointer or nil if the ID is invalid.
func (t *Tree) Get(id ID) *Scope {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// Len reports the number of scopes excluding the sentinel.
func (t *Tree) Len() int { return len(t.data) - 1 }

// Data exposes the arena without the sentinel.
func (t *Tree) Data() []Scope {
	if len(t.data) <= 1 {
		return nil
	}
	return t.data[1:]
}

// Dialect returns the vocabulary the tree renders with.
func (t *Tree) Dialect() dialect.Dialect { return t.dialect }

// Identities reports how many identity names the tree has handed out.
func (t *Tree) Identities() uint64 { return t.identities }

// Close ends the session trace span.
func (t *Tree) Close() {
	t.session.WithExtra("scopes", fmt.Sprint(t.Len())).
		WithExtra("identities", fmt.Sprint(t.identities)).
		End("")
}
