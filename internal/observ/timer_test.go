package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	parse := timer.Begin("parse")
	timer.End(parse, "3 directives")
	replay := timer.Begin("replay")
	timer.End(replay, "")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "3 directives" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	summary := timer.Summary()
	for _, want := range []string{"timings:", "parse", "replay", "total", "// 3 directives"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("expected empty report, got %+v", r)
	}
}
