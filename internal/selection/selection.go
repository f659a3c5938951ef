// Package selection remembers which schedule, grade, day and lunch the user
// picked and resolves the time sheet those choices point at.
package selection

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rowjay/bell-schedule/internal/schedule"
	"github.com/rowjay/bell-schedule/internal/state"
	"github.com/rowjay/bell-schedule/internal/timeofday"
	"github.com/rowjay/bell-schedule/internal/timesheet"
)

var (
	ErrOutOfRange     = errors.New("selection out of range")
	ErrUnknownDayType = errors.New("unknown day type")
)

const (
	KeyMiddleSchedule = "middle-times-schedule"
	KeyMiddleGrade    = "middle-times-grade"
	KeyHighSchedule   = "high-times-schedule"
	KeyHighDay        = "high-times-day"
	KeyHighLunchA     = "high-times-lunch-0"
	KeyHighLunchB     = "high-times-lunch-1"
)

// Keys lists every persisted selection key.
var Keys = []string{
	KeyMiddleSchedule,
	KeyMiddleGrade,
	KeyHighSchedule,
	KeyHighDay,
	KeyHighLunchA,
	KeyHighLunchB,
}

type selector struct {
	store  state.Store
	sheets schedule.Matrix
	clock  timeofday.Clock
	log    zerolog.Logger
}

// readInt treats a missing value as 0. A value that is not a decimal integer
// also reads as 0 so a damaged store never blocks the schedule.
func (s selector) readInt(ctx context.Context, key string) (int, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.log.Warn().Str("key", key).Str("value", raw).Msg("ignoring malformed selection")
		return 0, nil
	}
	return v, nil
}

func (s selector) writeInt(ctx context.Context, key string, v int) error {
	if err := s.store.Set(ctx, key, strconv.Itoa(v)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int("value", v).Msg("selection saved")
	return nil
}

func checkRange(name string, v, n int) error {
	if v < 0 || v >= n {
		return fmt.Errorf("%w: %s %d not in [0, %d)", ErrOutOfRange, name, v, n)
	}
	return nil
}

func (s selector) sheet(schedule, variant int) (*timesheet.TimeSheet, error) {
	ts, ok := s.sheets.Sheet(schedule, variant)
	if !ok {
		return nil, fmt.Errorf("%w: no sheet for schedule %d variant %d", ErrOutOfRange, schedule, variant)
	}
	return ts, nil
}

func (s selector) current(ts *timesheet.TimeSheet) (timesheet.Current, bool) {
	return ts.CurrentPeriod(timeofday.Now(s.clock))
}
