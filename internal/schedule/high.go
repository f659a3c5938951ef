package schedule

import (
	"fmt"

	"github.com/rowjay/bell-schedule/internal/timesheet"
)

// HighDay describes one high-school day type. Every lunch wave produces its
// own sheet in which the class it overlaps is cut around the lunch.
type HighDay struct {
	Name    string                `yaml:"name"`
	Periods []timesheet.RawPeriod `yaml:"periods"`
	Lunches []timesheet.RawPeriod `yaml:"lunches"`
}

// LunchLabel names a lunch wave, e.g. "B Lunch".
func LunchLabel(id string) string { return id + " Lunch" }

// BuildHigh returns Matrix[day][lunch index].
func BuildHigh(days []HighDay) (Matrix, error) {
	matrix := make(Matrix, 0, len(days))
	for _, day := range days {
		row, err := buildHighDay(day)
		if err != nil {
			return nil, fmt.Errorf("high day %q: %w", day.Name, err)
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}

func buildHighDay(day HighDay) ([]*timesheet.TimeSheet, error) {
	periods, err := timesheet.BuildPeriods(day.Periods)
	if err != nil {
		return nil, err
	}
	lunches, err := timesheet.BuildPeriods(day.Lunches)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 || len(lunches) == 0 {
		return nil, fmt.Errorf("%w: day needs periods and lunches", ErrInvalidSchedule)
	}

	row := make([]*timesheet.TimeSheet, 0, len(lunches))
	for _, lunch := range lunches {
		out, err := splitHighLunch(periods, lunch)
		if err != nil {
			return nil, fmt.Errorf("lunch %s: %w", lunch.ID, err)
		}
		ts, err := timesheet.New(out)
		if err != nil {
			return nil, fmt.Errorf("lunch %s: %w", lunch.ID, err)
		}
		row = append(row, ts)
	}
	return row, nil
}

func splitHighLunch(periods []timesheet.Period, lunch timesheet.Period) ([]timesheet.Period, error) {
	lunchPeriod := timesheet.Period{ID: lunch.ID, Name: LunchLabel(lunch.ID), Start: lunch.Start, End: lunch.End}
	out := make([]timesheet.Period, 0, len(periods)+2)
	placed := false
	for _, p := range periods {
		if !p.Overlaps(lunch) {
			// A lunch in a gap, or after the last class, slots in before the
			// first period that starts after it.
			if !placed && p.Start >= lunch.End {
				out = append(out, lunchPeriod)
				placed = true
			}
			out = append(out, p)
			continue
		}
		if placed {
			return nil, fmt.Errorf("%w: lunch overlaps more than one period", ErrInvalidSchedule)
		}
		if p.Start < lunch.Start {
			out = append(out, timesheet.Period{ID: p.ID, Name: p.Name, Start: p.Start, End: lunch.Start})
		}
		out = append(out, lunchPeriod)
		if p.End > lunch.End {
			out = append(out, timesheet.Period{ID: p.ID, Name: p.Name, Start: lunch.End, End: p.End})
		}
		placed = true
	}
	if !placed {
		out = append(out, lunchPeriod)
	}
	return out, nil
}
