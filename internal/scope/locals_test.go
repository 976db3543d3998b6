package scope

import (
	"reflect"
	"testing"
)

func TestAddLocalKeepsFirstSeenOrder(t *testing.T) {
	tree := NewTree(Options{})
	sc := tree.Get(tree.New(KindTop, NoID))
	for _, name := range []string{"b", "a", "b", "c", "a"} {
		sc.AddLocal(name)
	}
	if got := sc.Locals(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("unexpected locals %v", got)
	}
}

func TestHasLocalOwnScope(t *testing.T) {
	tree := NewTree(Options{})
	id := tree.New(KindDef, NoID)
	sc := tree.Get(id)
	sc.AddLocal("x")
	sc.AddArg("y")

	if !tree.HasLocal(id, "x") || !tree.HasLocal(id, "y") {
		t.Fatalf("expected locals and args to be visible")
	}
	if tree.HasLocal(id, "z") {
		t.Fatalf("unexpected local z")
	}
	if got := sc.Locals(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("args must not become locals, got %v", got)
	}
}

func TestHasLocalThroughIterChain(t *testing.T) {
	tree := NewTree(Options{})
	top := tree.New(KindTop, NoID)
	tree.Get(top).AddLocal("outer")
	def := tree.New(KindDef, top)
	tree.Get(def).AddArg("a")
	iter1 := tree.New(KindIter, def)
	iter2 := tree.New(KindIter, iter1)
	tree.Get(iter1).AddLocal("mid")

	cases := []struct {
		name string
		want bool
	}{
		{"a", true},
		{"mid", true},
		{"outer", false}, // the def stops the lookup
		{"nope", false},
	}
	for _, tc := range cases {
		if got := tree.HasLocal(iter2, tc.name); got != tc.want {
			t.Fatalf("HasLocal(iter2, %q) = %v, want %v", tc.name, got, tc.want)
		}
		if tc.name != "mid" && tree.HasLocal(iter2, tc.name) != tree.HasLocal(iter1, tc.name) {
			t.Fatalf("iter lookup for %q differs from parent", tc.name)
		}
	}
	if tree.HasLocal(def, "mid") {
		t.Fatalf("block locals must not leak into the def")
	}
}

func TestHasLocalParentlessIter(t *testing.T) {
	tree := NewTree(Options{})
	iter := tree.New(KindIter, NoID)
	if tree.HasLocal(iter, "x") {
		t.Fatalf("expected false")
	}
}

func TestDeclareLocalCapturesOuter(t *testing.T) {
	tree := NewTree(Options{})
	def := tree.New(KindDef, NoID)
	tree.Get(def).AddLocal("sum")
	iter := tree.New(KindIter, def)

	if tree.DeclareLocal(iter, "sum") {
		t.Fatalf("assignment to outer local must not declare")
	}
	if !tree.DeclareLocal(iter, "item") {
		t.Fatalf("expected new block local")
	}
	if got := tree.Get(iter).Locals(); !reflect.DeepEqual(got, []string{"item"}) {
		t.Fatalf("unexpected iter locals %v", got)
	}
}

func TestAddIvarIdempotent(t *testing.T) {
	tree := NewTree(Options{})
	sc := tree.Get(tree.New(KindClass, NoID))
	sc.AddIvar("@a")
	sc.AddIvar("@b")
	sc.AddIvar("@a")
	if got := sc.Ivars(); !reflect.DeepEqual(got, []string{"@a", "@b"}) {
		t.Fatalf("unexpected ivars %v", got)
	}
}
