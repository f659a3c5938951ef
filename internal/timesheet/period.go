// Package timesheet holds one day's ordered class periods and resolves which
// of them is running at a given time.
package timesheet

import (
	"fmt"

	"github.com/rowjay/bell-schedule/internal/timeofday"
)

// TransitionName names the gap between two scheduled periods.
const TransitionName = "Transition"

// Period is a named interval in minutes past midnight.
type Period struct {
	ID    string
	Name  string
	Start int
	End   int
}

// Length returns the period duration in minutes.
func (p Period) Length() int { return p.End - p.Start }

// Contains reports whether now falls in [Start, End].
func (p Period) Contains(now float64) bool {
	return now >= float64(p.Start) && now <= float64(p.End)
}

// Overlaps reports whether p and o share more than a boundary.
func (p Period) Overlaps(o Period) bool {
	return p.Start < o.End && o.Start < p.End
}

func (p Period) String() string {
	start, _ := timeofday.Format(float64(p.Start), timeofday.HoursMinutes)
	end, _ := timeofday.Format(float64(p.End), timeofday.HoursMinutes)
	return fmt.Sprintf("%s (%s-%s)", p.Name, start, end)
}

// RawPeriod is a period as written in the schedule tables.
type RawPeriod struct {
	ID    string `yaml:"id"`
	Times string `yaml:"times"`
	Name  string `yaml:"name,omitempty"`
}

// BuildPeriods parses each raw period's "H:MM-H:MM" range. Names default to
// the period ID and input order is kept.
func BuildPeriods(raw []RawPeriod) ([]Period, error) {
	periods := make([]Period, 0, len(raw))
	for _, r := range raw {
		start, end, err := timeofday.Split(r.Times)
		if err != nil {
			return nil, fmt.Errorf("period %s: %w", r.ID, err)
		}
		if start > end {
			return nil, fmt.Errorf("%w: period %s ends before it starts (%s)", ErrInvalidSheet, r.ID, r.Times)
		}
		name := r.Name
		if name == "" {
			name = r.ID
		}
		periods = append(periods, Period{ID: r.ID, Name: name, Start: start, End: end})
	}
	return periods, nil
}
