// Package testkit checks structural invariants of a scope tree after a
// replay. Tests call it directly; the CLI runs it under replay --check.
package testkit

import (
	"fmt"
	"strconv"
	"strings"

	"opalscope/internal/scope"
)

// CheckTreeInvariants runs a minimal set of invariants on a tree:
// 1) every parent exists and was created before its child
// 2) an iter with a parent never holds block or break flags itself
// 3) temps are unique and every free temp is a temp of the same scope
// 4) identities are unique, carry the dialect prefix and were minted by the tree
func CheckTreeInvariants(tree *scope.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	prefix := tree.Dialect().Names.Identity
	identities := make(map[string]scope.ID)

	for i := range tree.Data() {
		sc := &tree.Data()[i]
		id := sc.ID()
		if sc.Kind == scope.KindInvalid {
			return fmt.Errorf("scope %d: invalid kind", id)
		}

		// 1) parent links
		if sc.Parent.IsValid() {
			if sc.Parent >= id {
				return fmt.Errorf("scope %d: parent %d created after child", id, sc.Parent)
			}
			if tree.Get(sc.Parent) == nil {
				return fmt.Errorf("scope %d: parent %d not found", id, sc.Parent)
			}
		}

		// 2) flags on iters land on the owner
		if sc.Kind == scope.KindIter && sc.Parent.IsValid() && (sc.UsesBlock() || sc.CatchesBreak()) {
			return fmt.Errorf("iter %d holds block flags its owner %d should hold", id, tree.BlockOwner(id))
		}

		// 3) temps
		temps := make(map[string]struct{}, len(sc.Temps()))
		for _, name := range sc.Temps() {
			if _, dup := temps[name]; dup {
				return fmt.Errorf("scope %d: temp %q declared twice", id, name)
			}
			temps[name] = struct{}{}
		}
		free := make(map[string]struct{}, len(sc.FreeTemps()))
		for _, name := range sc.FreeTemps() {
			if _, ok := temps[name]; !ok {
				return fmt.Errorf("scope %d: free temp %q was never declared", id, name)
			}
			if _, dup := free[name]; dup {
				return fmt.Errorf("scope %d: temp %q queued twice", id, name)
			}
			free[name] = struct{}{}
		}
		if sc.LiveTemps() < 0 {
			return fmt.Errorf("scope %d: more temps free than minted", id)
		}

		// 4) identities
		name, ok := sc.Identity()
		if !ok {
			continue
		}
		if other, dup := identities[name]; dup {
			return fmt.Errorf("scopes %d and %d share identity %q", other, id, name)
		}
		identities[name] = id
		n, err := strconv.ParseUint(strings.TrimPrefix(name, prefix), 10, 64)
		if !strings.HasPrefix(name, prefix) || err != nil {
			return fmt.Errorf("scope %d: malformed identity %q", id, name)
		}
		if n == 0 || n > tree.Identities() {
			return fmt.Errorf("scope %d: identity %q outside minted range 1..%d", id, name, tree.Identities())
		}
	}
	return nil
}
