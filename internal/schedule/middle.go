package schedule

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/rowjay/bell-schedule/internal/timesheet"
)

// LunchName labels the chosen lunch slot in a middle-school sheet.
const LunchName = "Lunch"

// MiddleDay describes one middle-school day type. Periods numbered
// LunchStart..LunchEnd form the lunch block: the period listed in Lunches
// is lunch and the rest pair up into double periods.
type MiddleDay struct {
	Name       string         `yaml:"name"`
	Periods    []MiddlePeriod `yaml:"periods"`
	LunchStart int            `yaml:"lunch_start"`
	LunchEnd   int            `yaml:"lunch_end"`
	Lunches    []int          `yaml:"lunches"`
	Replace    []Rename       `yaml:"replace,omitempty"`
}

type MiddlePeriod struct {
	ID    int    `yaml:"id"`
	Times string `yaml:"times"`
}

// Rename gives a numbered period a display name, e.g. -1 -> "Eagle Time".
type Rename struct {
	From int    `yaml:"from"`
	To   string `yaml:"to"`
}

func (d MiddleDay) inLunchBlock(id int) bool {
	return id >= d.LunchStart && id <= d.LunchEnd
}

func (d MiddleDay) displayName(id int) string {
	for _, r := range d.Replace {
		if r.From == id {
			return r.To
		}
	}
	return strconv.Itoa(id)
}

// BuildMiddle returns Matrix[day][lunch index].
func BuildMiddle(days []MiddleDay) (Matrix, error) {
	matrix := make(Matrix, 0, len(days))
	for _, day := range days {
		row, err := buildMiddleDay(day)
		if err != nil {
			return nil, fmt.Errorf("middle day %q: %w", day.Name, err)
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}

func buildMiddleDay(day MiddleDay) ([]*timesheet.TimeSheet, error) {
	raw := make([]timesheet.RawPeriod, len(day.Periods))
	ids := make([]int, len(day.Periods))
	for i, p := range day.Periods {
		raw[i] = timesheet.RawPeriod{ID: strconv.Itoa(p.ID), Times: p.Times}
		ids[i] = p.ID
	}
	periods, err := timesheet.BuildPeriods(raw)
	if err != nil {
		return nil, err
	}
	if len(day.Lunches) == 0 {
		return nil, fmt.Errorf("%w: no lunches", ErrInvalidSchedule)
	}

	row := make([]*timesheet.TimeSheet, 0, len(day.Lunches))
	for _, lunch := range day.Lunches {
		if !day.inLunchBlock(lunch) || !slices.Contains(ids, lunch) {
			return nil, fmt.Errorf("%w: lunch %d is not a period in %d..%d", ErrInvalidSchedule, lunch, day.LunchStart, day.LunchEnd)
		}
		out, err := splitMiddleLunch(day, ids, periods, lunch)
		if err != nil {
			return nil, fmt.Errorf("lunch %d: %w", lunch, err)
		}
		ts, err := timesheet.New(out)
		if err != nil {
			return nil, fmt.Errorf("lunch %d: %w", lunch, err)
		}
		row = append(row, ts)
	}
	return row, nil
}

func splitMiddleLunch(day MiddleDay, ids []int, periods []timesheet.Period, lunch int) ([]timesheet.Period, error) {
	out := make([]timesheet.Period, 0, len(periods))
	for i := 0; i < len(periods); {
		id, p := ids[i], periods[i]
		name := day.displayName(id)
		switch {
		case !day.inLunchBlock(id):
			out = append(out, timesheet.Period{ID: p.ID, Name: name, Start: p.Start, End: p.End})
			i++
		case id == lunch:
			out = append(out, timesheet.Period{ID: p.ID, Name: LunchName, Start: p.Start, End: p.End})
			i++
		default:
			if i+1 >= len(periods) || !day.inLunchBlock(ids[i+1]) || ids[i+1] == lunch {
				return nil, fmt.Errorf("%w: period %d has no partner in the lunch block", ErrInvalidSchedule, id)
			}
			next := periods[i+1]
			out = append(out, timesheet.Period{
				ID:    p.ID + "-" + next.ID,
				Name:  name + "-" + next.ID,
				Start: p.Start,
				End:   next.End,
			})
			i += 2
		}
	}
	return out, nil
}
