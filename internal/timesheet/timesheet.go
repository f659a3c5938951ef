package timesheet

import (
	"errors"
	"fmt"

	"github.com/rowjay/bell-schedule/internal/timeofday"
)

var ErrInvalidSheet = errors.New("invalid time sheet")

// TimeSheet is an immutable, ascending, non-overlapping run of periods.
type TimeSheet struct {
	periods []Period
}

// Current is the period running at a given time and the minutes left in it.
type Current struct {
	Period   Period
	TimeLeft float64
}

// IsTransition reports whether the current period is a synthesized gap.
func (c Current) IsTransition() bool { return c.Period.Name == TransitionName }

// New validates and copies periods into a TimeSheet.
func New(periods []Period) (*TimeSheet, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: no periods", ErrInvalidSheet)
	}
	for i, p := range periods {
		if p.Start < 0 || p.End > 24*60 || p.Start > p.End {
			return nil, fmt.Errorf("%w: period %q has bounds %d-%d", ErrInvalidSheet, p.Name, p.Start, p.End)
		}
		if i > 0 && periods[i-1].End > p.Start {
			return nil, fmt.Errorf("%w: period %q overlaps %q", ErrInvalidSheet, p.Name, periods[i-1].Name)
		}
	}
	return &TimeSheet{periods: append([]Period(nil), periods...)}, nil
}

// MustNew is New for compiled-in data.
func MustNew(periods []Period) *TimeSheet {
	ts, err := New(periods)
	if err != nil {
		panic(err)
	}
	return ts
}

// Periods returns a copy of the sheet's periods.
func (ts *TimeSheet) Periods() []Period {
	return append([]Period(nil), ts.periods...)
}

// Len returns the number of periods.
func (ts *TimeSheet) Len() int { return len(ts.periods) }

// First and Last bound the school day.
func (ts *TimeSheet) First() Period { return ts.periods[0] }
func (ts *TimeSheet) Last() Period  { return ts.periods[len(ts.periods)-1] }

// CurrentPeriod resolves now (minutes past midnight). Boundaries are
// inclusive on both ends, and a time between two periods yields a
// Transition spanning the gap. ok is false outside the school day.
func (ts *TimeSheet) CurrentPeriod(now float64) (cur Current, ok bool) {
	if now < float64(ts.First().Start) || now > float64(ts.Last().End) {
		return Current{}, false
	}
	for i, p := range ts.periods {
		if p.Contains(now) {
			return Current{Period: p, TimeLeft: float64(p.End) - now}, true
		}
		if now < float64(p.Start) {
			gap := Period{
				Name:  TransitionName,
				Start: ts.periods[i-1].End,
				End:   p.Start,
			}
			return Current{Period: gap, TimeLeft: float64(p.Start) - now}, true
		}
	}
	return Current{}, false
}

// Current resolves the clock's present time.
func (ts *TimeSheet) Current(c timeofday.Clock) (Current, bool) {
	return ts.CurrentPeriod(timeofday.Now(c))
}
