package invperf

import (
	"testing"
	"time"
)

func TestModifiedDietz_NoFlows(t *testing.T) {
	// Zero entries pin the measurement window without contributing flows.
	flows := DateMap{
		day(2025, time.January, 31):  0,
		day(2025, time.February, 28): 0,
	}
	approx(t, "return", ModifiedDietz(1000, 1100, 0, 0, flows), 0.1)
}

func TestModifiedDietz_MidPeriodFlow(t *testing.T) {
	flows := DateMap{
		day(2025, time.June, 1):  0,
		day(2025, time.June, 16): -900,
		day(2025, time.July, 1):  0,
	}
	// 900 committed halfway: average capital 1000 + 450
	approx(t, "return", ModifiedDietz(1000, 2000, 0, 0, flows), 0.06896551724137931)
}

func TestModifiedDietz_WindowFromMapExtremes(t *testing.T) {
	// Without the start pin the same flow sits on the window boundary and is
	// weighted in full.
	flows := DateMap{
		day(2025, time.June, 16): -900,
		day(2025, time.July, 1):  0,
	}
	approx(t, "return", ModifiedDietz(1000, 2000, 0, 0, flows), 100.0/1900)
}

func TestModifiedDietz_Undefined(t *testing.T) {
	if got := ModifiedDietz(0, 0, 0, 0, DateMap{}); IsAvailable(got) {
		t.Errorf("empty map: got %v, want undefined", got)
	}
	// full withdrawal on the start date cancels the capital at risk
	flows := DateMap{
		day(2025, time.June, 1): 500,
		day(2025, time.July, 1): 0,
	}
	if got := ModifiedDietz(500, 0, 0, 0, flows); IsAvailable(got) {
		t.Errorf("zero denominator: got %v, want undefined", got)
	}
}

func TestModifiedDietz_IncomeAndExpense(t *testing.T) {
	flows := DateMap{
		day(2025, time.January, 31):  0,
		day(2025, time.February, 28): 0,
	}
	// income raises the numerator even when the end value already reflects it
	approx(t, "return", ModifiedDietz(1000, 1000, 50, -10, flows), 0.04)
}

func TestAnnualizedReturn(t *testing.T) {
	flows := DateMap{
		day(2024, time.June, 30): -1000,
		day(2025, time.June, 30): 1050,
	}
	approx(t, "one year", AnnualizedReturn(flows, 0.05), 0.05)

	if got := AnnualizedReturn(DateMap{}, 0.05); IsAvailable(got) {
		t.Errorf("empty map: got %v, want undefined", got)
	}
	sameDay := DateMap{day(2025, time.June, 30): 100}
	if got := AnnualizedReturn(sameDay, 0.05); IsAvailable(got) {
		t.Errorf("zero day span: got %v, want undefined", got)
	}
	if got := AnnualizedReturn(flows, NotAvailable()); IsAvailable(got) {
		t.Errorf("undefined period return: got %v, want undefined", got)
	}
}
