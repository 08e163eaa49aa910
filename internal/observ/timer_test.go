package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestMeasureRecordsPhases(t *testing.T) {
	timer := NewTimer()
	if err := timer.Measure("read", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if err := timer.Measure("build", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected the phase error back, got %v", err)
	}
	report := timer.Report()
	if len(report.Phases) != 2 || report.Phases[1].Note != "failed" {
		t.Fatalf("unexpected report %+v", report)
	}
	summary := timer.Summary()
	if !strings.Contains(summary, "read") || !strings.Contains(summary, "// failed") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestNilTimerIsSafe(t *testing.T) {
	var timer *Timer
	idx := timer.Begin("x")
	timer.End(idx, "")
	if len(timer.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}
