// Package scope tracks the lexical state of each construct while a Ruby
// program is compiled to JavaScript: locals, scratch temps, captured
// receivers, block and break usage, loop nesting and the methods a class
// body defines. Scopes live in a Tree arena and refer to their parent by ID.
package scope

import "opalscope/internal/trace"

// Scope is the record for one lexical construct.
type Scope struct {
	Kind   Kind
	Parent ID

	Name      string // class/module name, informational
	BlockName string // name bound to the method's block parameter

	DefinesDefn    bool // body refers to the method-definition target
	DefinesDefs    bool // body refers to the singleton-definition target
	DonatesMethods bool // module body whose methods are copied into includers

	id ID

	locals orderedSet
	args   orderedSet
	ivars  orderedSet

	temps      []string
	tempSet    map[string]struct{}
	minted     map[string]struct{}
	free       []string
	freeSet    map[string]struct{}
	names      nameCounter
	tempPrefix string

	identity     string
	methodID     string
	usesBlock    bool
	catchesBreak bool
	methods      orderedSet
	loops        []*LoopContext

	tracer   trace.Tracer
	span     *trace.Span
	rendered bool
}

// ID returns the arena index of the scope.
func (s *Scope) ID() ID { return s.id }

// Rendered reports whether the preamble has been rendered at least once.
func (s *Scope) Rendered() bool { return s.rendered }

// MethodID returns the method name recorded on this scope itself.
func (s *Scope) MethodID() string { return s.methodID }

// IsClassScope reports whether the scope is a class or module body.
func (s *Scope) IsClassScope() bool { return s.Kind.IsClassBody() }

// Identity returns the cached identity name without assigning one.
func (s *Scope) Identity() (string, bool) { return s.identity, s.identity != "" }

// UsesBlock reads the locally recorded flag only. Query the nearest non-iter
// ancestor of the call site; Tree.BlockOwner finds it.
func (s *Scope) UsesBlock() bool { return s.usesBlock }

// CatchesBreak reads the locally recorded flag only.
func (s *Scope) CatchesBreak() bool { return s.catchesBreak }

// SetMethodID records the method name of a def scope.
func (s *Scope) SetMethodID(name string) { s.methodID = name }

// AddMethod records a method defined directly in this body.
func (s *Scope) AddMethod(name string) { s.methods.add(name) }

// Methods lists the methods defined directly in this body, in order.
func (s *Scope) Methods() []string { return s.methods.list() }

func (s *Scope) violate(op string, err error, name string) {
	cerr := &ContractError{Op: op, Scope: s.id, Kind: s.Kind, Name: name, Err: err}
	trace.Error(s.tracer, trace.ScopeOp, op, s.span.ID(), cerr.Error())
	panic(cerr)
}
