package testkit

import (
	"strings"
	"testing"

	"opalscope/internal/scope"
)

func TestCheckTreeInvariantsHealthyTree(t *testing.T) {
	tree := scope.NewTree(scope.Options{})
	top := tree.New(scope.KindTop, scope.NoID)
	def := tree.New(scope.KindDef, top)
	tree.Get(def).SetMethodID("each")
	iter := tree.New(scope.KindIter, def)

	sc := tree.Get(def)
	a := sc.NewTemp()
	sc.NewTemp()
	sc.QueueTemp(a)
	tree.UsesBlock(iter)
	tree.CatchesBreak(iter)
	tree.SuperChain(iter)

	if err := CheckTreeInvariants(tree); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
}

func TestCheckTreeInvariantsNilTree(t *testing.T) {
	if err := CheckTreeInvariants(nil); err == nil {
		t.Fatal("expected error for nil tree")
	}
}

func TestCheckTreeInvariantsParentlessIterOwnsFlags(t *testing.T) {
	tree := scope.NewTree(scope.Options{})
	iter := tree.New(scope.KindIter, scope.NoID)
	if owner := tree.UsesBlock(iter); owner != iter {
		t.Fatalf("parentless iter should own its flags, got %d", owner)
	}
	if err := CheckTreeInvariants(tree); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
	if !strings.HasPrefix(tree.Identify(iter), "TMP_") {
		t.Fatalf("identity should use the default prefix")
	}
}
