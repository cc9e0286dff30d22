package invperf

import "time"

// Window identifies one of the fixed trailing measurement windows of a
// snapshot report. The set is a closed enumeration so that per-window
// category maps can be iterated exhaustively.
type Window int

const (
	// WindowPrev measures since the previous business day.
	WindowPrev Window = iota
	// WindowWeek measures the trailing week.
	WindowWeek
	// WindowFourWeek measures the trailing four weeks.
	WindowFourWeek
	// WindowThreeMonth measures the trailing three months.
	WindowThreeMonth
	// WindowYear measures the trailing year.
	WindowYear
	// WindowThreeYear measures the trailing three years.
	WindowThreeYear
	// WindowYTD measures since the end of the previous calendar year.
	WindowYTD
	// WindowAll measures since the first transaction.
	WindowAll
)

// Windows returns all snapshot windows in display order.
func Windows() []Window {
	return []Window{
		WindowPrev, WindowWeek, WindowFourWeek, WindowThreeMonth,
		WindowYear, WindowThreeYear, WindowYTD, WindowAll,
	}
}

func (w Window) String() string {
	switch w {
	case WindowPrev:
		return "PREV"
	case WindowWeek:
		return "1Wk"
	case WindowFourWeek:
		return "4Wk"
	case WindowThreeMonth:
		return "3Mnth"
	case WindowYear:
		return "1Yr"
	case WindowThreeYear:
		return "3Yr"
	case WindowYTD:
		return "YTD"
	case WindowAll:
		return "All"
	default:
		return "unknown"
	}
}

// Start returns the start date of the window for a snapshot taken on snap,
// given the date of the first transaction of the measured series.
// Values at the start date belong to the opening balance; flows strictly
// after it belong to the window.
func (w Window) Start(snap, firstTxn Date) Date {
	switch w {
	case WindowPrev:
		return snap.PrevBusinessDay()
	case WindowWeek:
		return snap.Add(-7)
	case WindowFourWeek:
		return snap.Add(-28)
	case WindowThreeMonth:
		return snap.AddMonth(-3)
	case WindowYear:
		return snap.AddMonth(-12)
	case WindowThreeYear:
		return snap.AddMonth(-36)
	case WindowYTD:
		return NewDate(snap.Year()-1, time.December, 31)
	case WindowAll:
		return firstTxn.PrevBusinessDay()
	default:
		panic("unknown window")
	}
}
