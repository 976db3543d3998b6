package scope

import (
	"errors"
	"fmt"
)

var (
	// ErrLoopUnderflow is raised by PopWhile on an empty loop stack.
	ErrLoopUnderflow = errors.New("loop stack underflow")
	// ErrForeignTemp is raised when a queued temp was not minted by the scope.
	ErrForeignTemp = errors.New("temp not minted by this scope")
	// ErrTempQueued is raised when a temp is queued twice without reallocation.
	ErrTempQueued = errors.New("temp already queued")
	// ErrUnknownParent is raised by Tree.New for a parent outside the arena.
	ErrUnknownParent = errors.New("unknown parent scope")
	// ErrInvalidKind is raised by Tree.New for KindInvalid.
	ErrInvalidKind = errors.New("invalid scope kind")
)

// ContractError describes a generator bug caught by the tracker. It is
// raised with panic; recover it and use errors.Is against the sentinels.
type ContractError struct {
	Op    string
	Scope ID
	Kind  Kind
	Name  string
	Err   error
}

func (e *ContractError) Error() string {
	msg := fmt.Sprintf("scope %d (%s): %s: %v", e.Scope, e.Kind, e.Op, e.Err)
	if e.Name != "" {
		msg += fmt.Sprintf(" (%q)", e.Name)
	}
	return msg
}

func (e *ContractError) Unwrap() error { return e.Err }
