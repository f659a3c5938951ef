package selection

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rowjay/bell-schedule/internal/schedule"
	"github.com/rowjay/bell-schedule/internal/state"
	"github.com/rowjay/bell-schedule/internal/timeofday"
	"github.com/rowjay/bell-schedule/internal/timesheet"
)

// Middle selects a middle-school sheet by schedule and grade. The grade picks
// the lunch variant.
type Middle struct {
	selector
}

func NewMiddle(store state.Store, sheets schedule.Matrix, clock timeofday.Clock, log zerolog.Logger) *Middle {
	return &Middle{selector{
		store:  store,
		sheets: sheets,
		clock:  clock,
		log:    log.With().Str("component", "middle").Logger(),
	}}
}

func (m *Middle) Schedule(ctx context.Context) (int, error) {
	return m.readInt(ctx, KeyMiddleSchedule)
}

func (m *Middle) SetSchedule(ctx context.Context, v int) error {
	if err := checkRange("schedule", v, len(m.sheets)); err != nil {
		return err
	}
	return m.writeInt(ctx, KeyMiddleSchedule, v)
}

func (m *Middle) Grade(ctx context.Context) (int, error) {
	return m.readInt(ctx, KeyMiddleGrade)
}

func (m *Middle) SetGrade(ctx context.Context, v int) error {
	if err := checkRange("grade", v, m.sheets.MaxVariants()); err != nil {
		return err
	}
	return m.writeInt(ctx, KeyMiddleGrade, v)
}

// Sheet returns the sheet for the stored schedule and grade.
func (m *Middle) Sheet(ctx context.Context) (*timesheet.TimeSheet, error) {
	sched, err := m.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	grade, err := m.Grade(ctx)
	if err != nil {
		return nil, err
	}
	return m.sheet(sched, grade)
}

// Current reports the period in progress. ok is false outside school hours.
func (m *Middle) Current(ctx context.Context) (cur timesheet.Current, ok bool, err error) {
	ts, err := m.Sheet(ctx)
	if err != nil {
		return timesheet.Current{}, false, err
	}
	cur, ok = m.current(ts)
	return cur, ok, nil
}
