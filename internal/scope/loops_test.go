package scope

import "testing"

func TestLoopStack(t *testing.T) {
	tree := NewTree(Options{})
	sc := tree.Get(tree.New(KindDef, NoID))
	if sc.InWhile() || sc.CurrentWhile() != nil {
		t.Fatalf("fresh scope has no loops")
	}

	outer := sc.PushWhile()
	outer.Label = "loop_1"
	inner := sc.PushWhile()
	inner.Set("closure", "true")

	if sc.LoopDepth() != 2 || sc.CurrentWhile() != inner {
		t.Fatalf("expected inner loop on top")
	}
	if v, ok := sc.CurrentWhile().Get("closure"); !ok || v != "true" {
		t.Fatalf("metadata lost: %q %v", v, ok)
	}
	if got := sc.PopWhile(); got != inner {
		t.Fatalf("popped wrong loop")
	}
	if got := sc.PopWhile(); got != outer || got.Label != "loop_1" {
		t.Fatalf("popped wrong loop")
	}
	if sc.InWhile() {
		t.Fatalf("stack must be empty")
	}
	expectContract(t, ErrLoopUnderflow, func() { sc.PopWhile() })
}

func TestLoopsDoNotCrossBlocks(t *testing.T) {
	tree := NewTree(Options{})
	def := tree.New(KindDef, NoID)
	tree.Get(def).PushWhile()
	iter := tree.New(KindIter, def)
	if tree.Get(iter).InWhile() {
		t.Fatalf("iter must not see the def's loop")
	}
}
