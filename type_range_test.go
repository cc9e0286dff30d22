package invperf

import (
	"testing"
	"time"
)

func TestRange(t *testing.T) {
	r := NewRange(day(2025, time.June, 30), day(2025, time.January, 31)) // reversed on purpose
	if r.From != day(2025, time.January, 31) || r.To != day(2025, time.June, 30) {
		t.Fatalf("NewRange did not swap: %s", r)
	}
	if !r.Contains(day(2025, time.January, 31)) || !r.Contains(day(2025, time.June, 30)) {
		t.Error("boundaries not contained")
	}
	if r.Contains(day(2025, time.July, 1)) {
		t.Error("date after the range contained")
	}
	if got := r.Days(); got != 150 {
		t.Errorf("Days = %d, want 150", got)
	}
}
