package selection

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rowjay/bell-schedule/internal/schedule"
	"github.com/rowjay/bell-schedule/internal/state"
	"github.com/rowjay/bell-schedule/internal/timeofday"
	"github.com/rowjay/bell-schedule/internal/timesheet"
)

// Days is the number of rotating day types. Each keeps its own lunch choice.
const Days = 2

var lunchKeys = [Days]string{KeyHighLunchA, KeyHighLunchB}

var dayTypes = map[string]int{"A": 0, "B": 1}

// DayTypeSource reports today's rotation letter.
type DayTypeSource interface {
	DayType(ctx context.Context) (string, error)
}

// High selects a high-school sheet by schedule and by the lunch wave chosen
// for the current A/B day.
type High struct {
	selector
	days DayTypeSource
}

func NewHigh(store state.Store, sheets schedule.Matrix, days DayTypeSource, clock timeofday.Clock, log zerolog.Logger) *High {
	return &High{
		selector: selector{
			store:  store,
			sheets: sheets,
			clock:  clock,
			log:    log.With().Str("component", "high").Logger(),
		},
		days: days,
	}
}

func (h *High) Schedule(ctx context.Context) (int, error) {
	return h.readInt(ctx, KeyHighSchedule)
}

func (h *High) SetSchedule(ctx context.Context, v int) error {
	if err := checkRange("schedule", v, len(h.sheets)); err != nil {
		return err
	}
	return h.writeInt(ctx, KeyHighSchedule, v)
}

func (h *High) Day(ctx context.Context) (int, error) {
	return h.readInt(ctx, KeyHighDay)
}

func (h *High) SetDay(ctx context.Context, v int) error {
	if err := checkRange("day", v, Days); err != nil {
		return err
	}
	return h.writeInt(ctx, KeyHighDay, v)
}

// Lunch returns the lunch wave stored for the given day.
func (h *High) Lunch(ctx context.Context, day int) (int, error) {
	if err := checkRange("day", day, Days); err != nil {
		return 0, err
	}
	return h.readInt(ctx, lunchKeys[day])
}

func (h *High) SetLunch(ctx context.Context, day, v int) error {
	if err := checkRange("day", day, Days); err != nil {
		return err
	}
	if err := checkRange("lunch", v, h.sheets.MaxVariants()); err != nil {
		return err
	}
	return h.writeInt(ctx, lunchKeys[day], v)
}

func (h *High) LunchDays(ctx context.Context) ([Days]int, error) {
	var out [Days]int
	for day := range out {
		v, err := h.Lunch(ctx, day)
		if err != nil {
			return out, err
		}
		out[day] = v
	}
	return out, nil
}

// SetLunchDays validates every slot before writing any of them.
func (h *High) SetLunchDays(ctx context.Context, lunches [Days]int) error {
	for _, v := range lunches {
		if err := checkRange("lunch", v, h.sheets.MaxVariants()); err != nil {
			return err
		}
	}
	for day, v := range lunches {
		if err := h.writeInt(ctx, lunchKeys[day], v); err != nil {
			return err
		}
	}
	return nil
}

// Sheet returns the sheet for the stored schedule and today's lunch.
func (h *High) Sheet(ctx context.Context) (*timesheet.TimeSheet, error) {
	sched, err := h.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	day, err := h.Day(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRange("day", day, Days); err != nil {
		return nil, err
	}
	lunch, err := h.readInt(ctx, lunchKeys[day])
	if err != nil {
		return nil, err
	}
	return h.sheet(sched, lunch)
}

func (h *High) Current(ctx context.Context) (cur timesheet.Current, ok bool, err error) {
	ts, err := h.Sheet(ctx)
	if err != nil {
		return timesheet.Current{}, false, err
	}
	cur, ok = h.current(ts)
	return cur, ok, nil
}

// UpdateDay asks the day-type service for today's letter and stores the
// matching day. On any failure the stored day is left as it was.
func (h *High) UpdateDay(ctx context.Context) (int, error) {
	if h.days == nil {
		return 0, fmt.Errorf("update day: no day type source configured")
	}
	letter, err := h.days.DayType(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("day type lookup failed")
		return 0, fmt.Errorf("update day: %w", err)
	}
	day, ok := dayTypes[letter]
	if !ok {
		h.log.Warn().Str("type", letter).Msg("day type service returned an unknown value")
		return 0, fmt.Errorf("update day: %w: %q", ErrUnknownDayType, letter)
	}
	if err := h.writeInt(ctx, KeyHighDay, day); err != nil {
		return 0, fmt.Errorf("update day: %w", err)
	}
	h.log.Info().Str("type", letter).Int("day", day).Msg("day updated")
	return day, nil
}
