package invperf

import "math"

// NotAvailable is the sentinel for a return that is undefined over a window
// (no capital at risk). It propagates through aggregation untouched and must
// never be coerced to zero.
func NotAvailable() float64 { return math.NaN() }

// IsAvailable reports whether a return value is defined.
func IsAvailable(ret float64) bool { return !math.IsNaN(ret) }

// ModifiedDietz computes the money-weighted return of a period from its
// start/end values, net income and expense, and the dated cash flows of the
// period.
//
// The measurement window is pinned by the extreme dates of the flow map
// itself: callers insert explicit zero entries at the window boundaries when
// an opening or closing balance exists (see FromToReport). A flow on the
// start date is weighted for the full period, a flow on the end date for
// none of it, linear in between.
//
// Flow values follow the transaction sign convention (negative = capital
// committed), so the net external inflow of the period is -flows.Sum().
// When the denominator, the average capital at risk, is within valueEpsilon
// of zero the return is undefined and NotAvailable is returned.
func ModifiedDietz(startValue, endValue, income, expense float64, flows DateMap) float64 {
	from, ok := flows.First()
	if !ok {
		return NotAvailable()
	}
	to, _ := flows.Last()
	totDays := from.DaysUntil(to)

	var weighted float64
	for date, v := range flows {
		weight := 1.0
		if totDays > 0 {
			weight = float64(date.DaysUntil(to)) / float64(totDays)
		}
		weighted += v * weight
	}

	denominator := startValue - weighted
	if abs(denominator) < valueEpsilon {
		return NotAvailable()
	}
	return (endValue - startValue + income + expense + flows.Sum()) / denominator
}

// AnnualizedReturn compounds a period return to an annual rate over the
// actual day count spanned by the extreme dates of the flow map, using an
// actual/365 convention: (1+R)^(365/days) - 1.
//
// The flow map is expected to carry entries on the effective start and end
// dates of the measurement (report builders insert the start value as a
// negative flow and the end value as a positive one before calling, and
// remove them right after, keeping the map reusable for aggregation).
func AnnualizedReturn(flows DateMap, periodReturn float64) float64 {
	from, ok := flows.First()
	if !ok {
		return NotAvailable()
	}
	to, _ := flows.Last()
	days := from.DaysUntil(to)
	if days <= 0 {
		return NotAvailable()
	}
	return math.Pow(1+periodReturn, 365.0/float64(days)) - 1
}
