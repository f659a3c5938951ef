package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowjay/bell-schedule/internal/compress"
	"github.com/rowjay/bell-schedule/internal/config"
	"github.com/rowjay/bell-schedule/internal/selection"
	"github.com/rowjay/bell-schedule/internal/state"
	"github.com/rowjay/bell-schedule/internal/timeofday"
)

type staticDays struct {
	letter string
	err    error
}

func (s staticDays) DayType(context.Context) (string, error) { return s.letter, s.err }

var testKey = "hex:" + strings.Repeat("ab", 32)

func newTestApp(t *testing.T, days selection.DayTypeSource, minutes float64) (*App, state.Store) {
	t.Helper()
	store := state.NewMemory()
	cfg := &config.Config{State: config.StateConfig{Backend: "memory", StateKey: testKey}}
	a, err := New(cfg, store, days, timeofday.At(minutes), zerolog.Nop())
	require.NoError(t, err)
	return a, store
}

func TestNowHigh(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, staticDays{letter: "B"}, 690)

	require.NoError(t, a.High.SetLunch(ctx, 1, 1))
	day, err := a.UpdateDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, day)

	res, err := a.Now(ctx, "high")
	require.NoError(t, err)
	require.True(t, res.InSession)
	assert.Equal(t, "B Lunch", res.Current.Period.Name)
}

func TestNowOutsideHours(t *testing.T) {
	a, _ := newTestApp(t, nil, 23*60)
	res, err := a.Now(context.Background(), "middle")
	require.NoError(t, err)
	assert.False(t, res.InSession)
}

func TestUnknownSchool(t *testing.T) {
	a, _ := newTestApp(t, nil, 600)
	_, err := a.Now(context.Background(), "elementary")
	assert.ErrorIs(t, err, ErrUnknownSchool)
	_, err = a.Sheet(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnknownSchool)
}

func TestValidate(t *testing.T) {
	a, _ := newTestApp(t, staticDays{letter: "A"}, 600)
	require.NoError(t, a.Validate(context.Background()))

	down := errors.New("no route to host")
	a, _ = newTestApp(t, staticDays{err: down}, 600)
	assert.ErrorIs(t, a.Validate(context.Background()), down)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, opts := range []SnapshotOptions{
		{Compression: compress.TypeNone},
		{Compression: compress.TypeGzip},
		{Compression: compress.TypeZstd, Encrypt: true},
	} {
		src, _ := newTestApp(t, nil, 600)
		require.NoError(t, src.Middle.SetGrade(ctx, 1))
		require.NoError(t, src.High.SetLunchDays(ctx, [selection.Days]int{2, 1}))

		var buf bytes.Buffer
		snap, err := src.ExportState(ctx, &buf, opts)
		require.NoError(t, err)
		assert.Equal(t, "1", snap.Values[selection.KeyMiddleGrade])

		dst, store := newTestApp(t, nil, 600)
		got, err := dst.ImportState(ctx, &buf, opts)
		require.NoError(t, err, "options %+v", opts)
		assert.Equal(t, snap.Values, got.Values)

		v, err := store.Get(ctx, selection.KeyHighLunchA)
		require.NoError(t, err)
		assert.Equal(t, "2", v)
		lunches, err := dst.High.LunchDays(ctx)
		require.NoError(t, err)
		assert.Equal(t, [selection.Days]int{2, 1}, lunches)
	}
}

func TestImportRejectsBadSnapshot(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"version":     `{"version":2,"values":{}}`,
		"unknown key": `{"version":1,"values":{"colour":"1"}}`,
		"not integer": `{"version":1,"values":{"middle-times-grade":"one","high-times-day":"1"}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			a, store := newTestApp(t, nil, 600)
			_, err := a.ImportState(ctx, strings.NewReader(doc), SnapshotOptions{})
			require.Error(t, err)
			v, err := store.Get(ctx, selection.KeyHighDay)
			require.NoError(t, err)
			assert.Empty(t, v)
		})
	}
}

func TestExportEncryptedNeedsKey(t *testing.T) {
	a, _ := newTestApp(t, nil, 600)
	a.Cfg.State.StateKey = ""
	_, err := a.ExportState(context.Background(), &bytes.Buffer{}, SnapshotOptions{Encrypt: true})
	assert.Error(t, err)
}
