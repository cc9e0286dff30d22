package invperf

import "slices"

// valueEpsilon is the threshold below which aggregated values are snapped to
// zero, so that float noise in merged balances never masquerades as capital.
const valueEpsilon = 0.0001

// cleanValue rounds values near zero to exactly zero.
func cleanValue(v float64) float64 {
	if v > -valueEpsilon && v < valueEpsilon {
		return 0
	}
	return v
}

// DateMap accumulates cash flows keyed by calendar date. Flows sharing a date
// are summed into a single entry. Values follow the transaction sign
// convention: negative amounts are capital committed, positive amounts
// capital released.
//
// A zero-valued entry is still an entry: report builders insert explicit
// zero flows to pin the boundaries of a measurement window.
type DateMap map[Date]float64

// Add accumulates a value on a date, creating the entry if needed.
func (m DateMap) Add(on Date, v float64) {
	m[on] += v
}

// Plus returns a new map holding the key-wise sum of m and o.
// Either receiver or argument may be nil.
func (m DateMap) Plus(o DateMap) DateMap {
	out := make(DateMap, len(m)+len(o))
	for d, v := range m {
		out[d] = v
	}
	for d, v := range o {
		out[d] += v
	}
	return out
}

// Minus returns a new map holding m with every entry of o subtracted,
// reversing o's flow directions for entries absent from m.
func (m DateMap) Minus(o DateMap) DateMap {
	out := make(DateMap, len(m)+len(o))
	for d, v := range m {
		out[d] = v
	}
	for d, v := range o {
		out[d] -= v
	}
	return out
}

// Dates returns the map's dates in ascending order.
func (m DateMap) Dates() []Date {
	dates := make([]Date, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b Date) int { return b.DaysUntil(a) })
	return dates
}

// First returns the earliest date of the map; ok is false for an empty map.
func (m DateMap) First() (first Date, ok bool) {
	for d := range m {
		if !ok || d.Before(first) {
			first = d
			ok = true
		}
	}
	return first, ok
}

// Last returns the latest date of the map; ok is false for an empty map.
func (m DateMap) Last() (last Date, ok bool) {
	for d := range m {
		if !ok || d.After(last) {
			last = d
			ok = true
		}
	}
	return last, ok
}

// Sum returns the sum of all values in the map.
func (m DateMap) Sum() float64 {
	var sum float64
	for _, v := range m {
		sum += v
	}
	return sum
}

// Clone returns a copy of the map; a nil map clones to an empty one.
func (m DateMap) Clone() DateMap {
	out := make(DateMap, len(m))
	for d, v := range m {
		out[d] = v
	}
	return out
}
