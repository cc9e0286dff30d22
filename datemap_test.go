package invperf

import (
	"testing"
	"time"
)

func TestDateMap_AddKeepsZeroEntries(t *testing.T) {
	m := DateMap{}
	m.Add(day(2025, time.January, 2), 0)
	if len(m) != 1 {
		t.Fatalf("len = %d, want 1: zero entries pin windows and must survive", len(m))
	}
	m.Add(day(2025, time.January, 2), 500)
	m.Add(day(2025, time.January, 2), -500)
	approx(t, "cancelled entry", m[day(2025, time.January, 2)], 0)
	if len(m) != 1 {
		t.Errorf("len = %d, want 1", len(m))
	}
}

func TestDateMap_PlusMinus(t *testing.T) {
	a := DateMap{day(2025, time.January, 2): 100, day(2025, time.January, 3): 50}
	b := DateMap{day(2025, time.January, 3): -20, day(2025, time.January, 4): 7}

	sum := a.Plus(b)
	approx(t, "sum jan2", sum[day(2025, time.January, 2)], 100)
	approx(t, "sum jan3", sum[day(2025, time.January, 3)], 30)
	approx(t, "sum jan4", sum[day(2025, time.January, 4)], 7)

	diff := a.Minus(b)
	approx(t, "diff jan3", diff[day(2025, time.January, 3)], 70)
	approx(t, "diff jan4", diff[day(2025, time.January, 4)], -7)

	// operands untouched
	approx(t, "a jan3", a[day(2025, time.January, 3)], 50)
	if len(b) != 2 {
		t.Errorf("len(b) = %d, want 2", len(b))
	}
}

func TestDateMap_FirstLastSum(t *testing.T) {
	m := DateMap{
		day(2025, time.March, 3):   10,
		day(2025, time.January, 2): 20,
		day(2025, time.June, 30):   30,
	}
	first, ok := m.First()
	if !ok || first != day(2025, time.January, 2) {
		t.Errorf("First = %v, %v", first, ok)
	}
	last, ok := m.Last()
	if !ok || last != day(2025, time.June, 30) {
		t.Errorf("Last = %v, %v", last, ok)
	}
	approx(t, "sum", m.Sum(), 60)

	if _, ok := (DateMap{}).First(); ok {
		t.Error("First on empty map reported ok")
	}
}

func TestCleanValue(t *testing.T) {
	approx(t, "noise", cleanValue(0.00005), 0)
	approx(t, "negative noise", cleanValue(-0.00009), 0)
	approx(t, "real value", cleanValue(5), 5)
}
