package scope

import (
	"reflect"
	"testing"
)

func TestShortNameSequence(t *testing.T) {
	cases := map[uint64]string{
		0:   "a",
		1:   "b",
		25:  "z",
		26:  "aa",
		27:  "ab",
		51:  "az",
		52:  "ba",
		701: "zz",
		702: "aaa",
	}
	for n, want := range cases {
		if got := shortName(n); got != want {
			t.Fatalf("shortName(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestNewTempMintsSequentialNames(t *testing.T) {
	tree := NewTree(Options{})
	sc := tree.Get(tree.New(KindDef, NoID))
	got := []string{sc.NewTemp(), sc.NewTemp(), sc.NewTemp()}
	if !reflect.DeepEqual(got, []string{"__a", "__b", "__c"}) {
		t.Fatalf("unexpected temps %v", got)
	}
	if !reflect.DeepEqual(sc.Temps(), got) {
		t.Fatalf("temps not declared: %v", sc.Temps())
	}
}

func TestQueueTempReusesBeforeGrowth(t *testing.T) {
	tree := NewTree(Options{})
	sc := tree.Get(tree.New(KindDef, NoID))
	a := sc.NewTemp()
	sc.QueueTemp(a)
	if again := sc.NewTemp(); again != a {
		t.Fatalf("expected reuse of %q, got %q", a, again)
	}
	if len(sc.Temps()) != 1 {
		t.Fatalf("reuse must not redeclare, temps=%v", sc.Temps())
	}
}

func TestTempPoolNeverDuplicatesLiveNames(t *testing.T) {
	tree := NewTree(Options{})
	sc := tree.Get(tree.New(KindDef, NoID))

	live := map[string]bool{}
	var order []string
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		if i%3 == 2 && len(order) > 0 {
			victim := order[(i*7)%len(order)]
			if live[victim] {
				sc.QueueTemp(victim)
				live[victim] = false
				continue
			}
		}
		name := sc.NewTemp()
		if live[name] {
			t.Fatalf("temp %q handed out twice while live", name)
		}
		live[name] = true
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	declared := map[string]bool{}
	for _, name := range sc.Temps() {
		if declared[name] {
			t.Fatalf("temp %q declared twice", name)
		}
		declared[name] = true
	}
	if len(declared) != len(seen) {
		t.Fatalf("declared %d temps, minted %d", len(declared), len(seen))
	}
	var checkedOut int
	for _, l := range live {
		if l {
			checkedOut++
		}
	}
	if sc.LiveTemps() != checkedOut {
		t.Fatalf("LiveTemps = %d, want %d", sc.LiveTemps(), checkedOut)
	}
}

func TestQueueTempRejectsMisuse(t *testing.T) {
	tree := NewTree(Options{})
	a := tree.Get(tree.New(KindDef, NoID))
	name := a.NewTemp()

	b := tree.Get(tree.New(KindDef, NoID))
	expectContract(t, ErrForeignTemp, func() { b.QueueTemp(name) })

	a = tree.Get(1)
	a.QueueTemp(name)
	expectContract(t, ErrTempQueued, func() { a.QueueTemp(name) })

	a.AddTemp("$ret")
	expectContract(t, ErrForeignTemp, func() { a.QueueTemp("$ret") })
}

func TestAddTempSkipsPool(t *testing.T) {
	tree := NewTree(Options{})
	sc := tree.Get(tree.New(KindDef, NoID))
	sc.AddTemp("__a")
	sc.AddTemp("__a")
	first := sc.NewTemp()
	if first != "__b" {
		t.Fatalf("minted name collided with fixed temp: %q", first)
	}
	if got := sc.Temps(); !reflect.DeepEqual(got, []string{"__a", "__b"}) {
		t.Fatalf("unexpected temps %v", got)
	}
}

func TestTempCountersArePerScope(t *testing.T) {
	tree := NewTree(Options{})
	a := tree.New(KindDef, NoID)
	b := tree.New(KindDef, NoID)
	if tree.Get(a).NewTemp() != "__a" || tree.Get(b).NewTemp() != "__a" {
		t.Fatalf("each scope starts its own counter")
	}
}
