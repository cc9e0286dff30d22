package invperf

import (
	"testing"
	"time"
)

func TestWindowStart(t *testing.T) {
	snap := day(2025, time.June, 30) // a Monday
	first := day(2025, time.January, 15)

	cases := []struct {
		w    Window
		want Date
	}{
		{WindowPrev, day(2025, time.June, 27)}, // skips the weekend
		{WindowWeek, day(2025, time.June, 23)},
		{WindowFourWeek, day(2025, time.June, 2)},
		{WindowThreeMonth, day(2025, time.March, 30)},
		{WindowYear, day(2024, time.June, 30)},
		{WindowThreeYear, day(2022, time.June, 30)},
		{WindowYTD, day(2024, time.December, 31)},
		{WindowAll, day(2025, time.January, 14)}, // day before the first transaction
	}
	for _, c := range cases {
		if got := c.w.Start(snap, first); got != c.want {
			t.Errorf("%s.Start = %s, want %s", c.w, got, c.want)
		}
	}
}

func TestWindowStrings(t *testing.T) {
	want := []string{"PREV", "1Wk", "4Wk", "3Mnth", "1Yr", "3Yr", "YTD", "All"}
	ws := Windows()
	if len(ws) != len(want) {
		t.Fatalf("len(Windows()) = %d, want %d", len(ws), len(want))
	}
	for i, w := range ws {
		if w.String() != want[i] {
			t.Errorf("Windows()[%d] = %s, want %s", i, w, want[i])
		}
	}
}
