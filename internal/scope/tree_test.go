package scope

import (
	"errors"
	"testing"

	"opalscope/internal/trace"
)

func expectContract(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", want)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %T: %v", r, r)
		}
		var cerr *ContractError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected *ContractError, got %T", err)
		}
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}()
	fn()
}

func TestTreeNewAssignsSequentialIDs(t *testing.T) {
	tree := NewTree(Options{})
	top := tree.New(KindTop, NoID)
	def := tree.New(KindDef, top)

	if top != 1 || def != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", top, def)
	}
	if tree.Len() != 2 {
		t.Fatalf("expected 2 scopes, got %d", tree.Len())
	}
	sc := tree.Get(def)
	if sc.Parent != top || sc.Kind != KindDef || sc.ID() != def {
		t.Fatalf("unexpected scope %+v", sc)
	}
	if tree.Get(NoID) != nil || tree.Get(99) != nil {
		t.Fatalf("expected nil for invalid ids")
	}
}

func TestTreeNewRejectsUnknownParent(t *testing.T) {
	tree := NewTree(Options{})
	expectContract(t, ErrUnknownParent, func() { tree.New(KindDef, 7) })
	expectContract(t, ErrInvalidKind, func() { tree.New(KindInvalid, NoID) })
}

func TestParseKindRoundTrip(t *testing.T) {
	for k := KindTop; k <= KindIter; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("lambda"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestTreeTracesConstructs(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	tree := NewTree(Options{Tracer: ring})
	top := tree.New(KindTop, NoID)
	def := tree.New(KindDef, top)
	tree.RenderPreamble(def, "")
	tree.RenderPreamble(def, "")
	tree.RenderPreamble(top, "")
	tree.Close()

	var begins, ends int
	for _, ev := range ring.Snapshot() {
		if ev.Scope != trace.ScopeConstruct {
			continue
		}
		switch ev.Kind {
		case trace.KindSpanBegin:
			begins++
		case trace.KindSpanEnd:
			ends++
		}
	}
	if begins != 2 || ends != 2 {
		t.Fatalf("expected 2 construct begins and ends, got %d/%d", begins, ends)
	}
}
