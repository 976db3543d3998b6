package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	bag.Add(NewError(ScrUnknownLabel, 9, "unknown label $x"))
	bag.Add(New(SevWarning, ObsOpenLoop, 2, "loop open"))
	bag.Add(NewError(ScrMissingArgument, 2, "local needs a name"))
	if bag.Add(NewError(ScrBadKind, 1, "dropped")) {
		t.Fatalf("expected limit to reject the fourth diagnostic")
	}

	bag.Sort()
	items := bag.Items()
	if items[0].Code != ScrMissingArgument || items[1].Code != ObsOpenLoop || items[2].Line != 9 {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}
	if !strings.Contains(bag.Error(), "SCR1002") || strings.Contains(bag.Error(), "OBS3001") {
		t.Fatalf("unexpected error text %q", bag.Error())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		ScrUnknownDirective: "SCR1001",
		ScpLoopUnderflow:    "SCP2001",
		ObsOpenLoop:         "OBS3001",
		UnknownCode:         "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("ID(%d) = %q, want %q", code, got, want)
		}
	}
	if Code(4242).Title() != "Unknown error" {
		t.Fatalf("unexpected fallback title")
	}
}

func TestFprintPlain(t *testing.T) {
	var buf bytes.Buffer
	err := Fprint(&buf, "a.scope", []Diagnostic{NewError(ScrLeaveAtRoot, 4, "leave at top level")}, false)
	if err != nil {
		t.Fatalf("fprint: %v", err)
	}
	if got := buf.String(); got != "a.scope:4: ERROR SCR1006: leave at top level\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
