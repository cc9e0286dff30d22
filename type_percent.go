package invperf

import (
	"fmt"
	"math"
)

// Percent represents a return ratio (0.05 for 5%) for display purposes.
// NaN renders as "N/A": an undefined return, not a zero one.
type Percent float64

func (p Percent) IsAvailable() bool { return !math.IsNaN(float64(p)) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	if !p.IsAvailable() || !q.IsAvailable() {
		return p.IsAvailable() == q.IsAvailable()
	}
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if !p.IsAvailable() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", 100*p)
}

func (p Percent) SignedString() string {
	if !p.IsAvailable() {
		return "N/A"
	}
	res := fmt.Sprintf("%+.2f%%", 100*p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
