package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rowjay/bell-schedule/internal/config"
	"github.com/rowjay/bell-schedule/internal/schedule"
	"github.com/rowjay/bell-schedule/internal/selection"
	"github.com/rowjay/bell-schedule/internal/state"
	"github.com/rowjay/bell-schedule/internal/timeofday"
	"github.com/rowjay/bell-schedule/internal/timesheet"
)

const (
	SchoolMiddle = "middle"
	SchoolHigh   = "high"
)

var ErrUnknownSchool = errors.New("unknown school (want middle or high)")

type App struct {
	Cfg    *config.Config
	Store  state.Store
	Log    zerolog.Logger
	Middle *selection.Middle
	High   *selection.High

	days selection.DayTypeSource
}

// New builds the compiled-in schedules and wires both selectors to store.
func New(cfg *config.Config, store state.Store, days selection.DayTypeSource, clock timeofday.Clock, log zerolog.Logger) (*App, error) {
	middle, high, err := schedule.Defaults()
	if err != nil {
		return nil, fmt.Errorf("build schedules: %w", err)
	}
	return &App{
		Cfg:    cfg,
		Store:  store,
		Log:    log,
		Middle: selection.NewMiddle(store, middle, clock, log),
		High:   selection.NewHigh(store, high, days, clock, log),
		days:   days,
	}, nil
}

type sheetResolver interface {
	Sheet(ctx context.Context) (*timesheet.TimeSheet, error)
	Current(ctx context.Context) (timesheet.Current, bool, error)
}

func (a *App) resolver(school string) (sheetResolver, error) {
	switch strings.ToLower(school) {
	case SchoolMiddle:
		return a.Middle, nil
	case SchoolHigh:
		return a.High, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchool, school)
	}
}

// Sheet returns the selected time sheet for a school.
func (a *App) Sheet(ctx context.Context, school string) (*timesheet.TimeSheet, error) {
	r, err := a.resolver(school)
	if err != nil {
		return nil, err
	}
	return r.Sheet(ctx)
}

type NowResult struct {
	Current   timesheet.Current
	InSession bool
}

// Now resolves the period in progress for a school.
func (a *App) Now(ctx context.Context, school string) (NowResult, error) {
	r, err := a.resolver(school)
	if err != nil {
		return NowResult{}, err
	}
	cur, ok, err := r.Current(ctx)
	if err != nil {
		return NowResult{}, err
	}
	return NowResult{Current: cur, InSession: ok}, nil
}

// Selections returns the raw stored value of every selection key.
func (a *App) Selections(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(selection.Keys))
	for _, key := range selection.Keys {
		v, err := a.Store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}

func (a *App) UpdateDay(ctx context.Context) (int, error) {
	return a.High.UpdateDay(ctx)
}

// Validate checks the state backend and the day-type service concurrently.
func (a *App) Validate(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := a.Store.Ping(egCtx); err != nil {
			return fmt.Errorf("state backend %s: %w", a.Cfg.State.Backend, err)
		}
		return nil
	})
	if a.days != nil {
		eg.Go(func() error {
			letter, err := a.days.DayType(egCtx)
			if err != nil {
				return fmt.Errorf("day type service: %w", err)
			}
			a.Log.Debug().Str("type", letter).Msg("day type service reachable")
			return nil
		})
	}
	return eg.Wait()
}
