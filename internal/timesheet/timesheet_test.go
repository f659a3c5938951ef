package timesheet

import (
	"errors"
	"testing"
)

func sampleSheet(t *testing.T) *TimeSheet {
	t.Helper()
	periods, err := BuildPeriods([]RawPeriod{
		{ID: "1", Times: "8:25-9:22"},
		{ID: "2", Times: "9:25-10:15"},
		{ID: "3", Times: "10:18-11:08", Name: "Science"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, err := New(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ts
}

func TestBuildPeriods(t *testing.T) {
	periods, err := BuildPeriods([]RawPeriod{
		{ID: "9", Times: "1:30-2:20"},
		{ID: "1", Times: "8:25-9:22", Name: "Homeroom"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}
	if periods[0].ID != "9" || periods[0].Name != "9" || periods[0].Start != 810 || periods[0].End != 860 {
		t.Fatalf("unexpected first period: %+v", periods[0])
	}
	if periods[1].Name != "Homeroom" || periods[1].Start != 505 {
		t.Fatalf("unexpected second period: %+v", periods[1])
	}
}

func TestBuildPeriodsRejectsBadInput(t *testing.T) {
	if _, err := BuildPeriods([]RawPeriod{{ID: "1", Times: "8:xx-9:00"}}); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := BuildPeriods([]RawPeriod{{ID: "1", Times: "11:00-10:00"}}); !errors.Is(err, ErrInvalidSheet) {
		t.Fatalf("expected ErrInvalidSheet, got %v", err)
	}
}

func TestNewRejectsOverlap(t *testing.T) {
	_, err := New([]Period{
		{Name: "1", Start: 500, End: 560},
		{Name: "2", Start: 550, End: 600},
	})
	if !errors.Is(err, ErrInvalidSheet) {
		t.Fatalf("expected ErrInvalidSheet, got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrInvalidSheet) {
		t.Fatalf("expected ErrInvalidSheet for empty sheet, got %v", err)
	}
}

func TestCurrentPeriodBoundaries(t *testing.T) {
	ts := sampleSheet(t)
	for _, p := range ts.Periods() {
		cur, ok := ts.CurrentPeriod(float64(p.Start))
		if !ok || cur.Period != p {
			t.Fatalf("at start of %s: got %+v ok=%v", p.Name, cur, ok)
		}
		if cur.TimeLeft != float64(p.Length()) {
			t.Fatalf("at start of %s: time left %v, want %d", p.Name, cur.TimeLeft, p.Length())
		}
		cur, ok = ts.CurrentPeriod(float64(p.End))
		if !ok || cur.Period != p || cur.TimeLeft != 0 {
			t.Fatalf("at end of %s: got %+v ok=%v", p.Name, cur, ok)
		}
	}
}

func TestCurrentPeriodMidPeriod(t *testing.T) {
	ts := sampleSheet(t)
	cur, ok := ts.CurrentPeriod(600.5)
	if !ok {
		t.Fatalf("expected a current period")
	}
	if cur.Period.Name != "2" || cur.TimeLeft != 14.5 {
		t.Fatalf("unexpected current period: %+v", cur)
	}
}

func TestCurrentPeriodTransition(t *testing.T) {
	ts := sampleSheet(t)
	cur, ok := ts.CurrentPeriod(563.5)
	if !ok {
		t.Fatalf("expected a transition")
	}
	if !cur.IsTransition() {
		t.Fatalf("expected transition, got %+v", cur)
	}
	if cur.Period.Start != 562 || cur.Period.End != 565 {
		t.Fatalf("unexpected transition bounds: %+v", cur.Period)
	}
	if cur.TimeLeft != 1.5 {
		t.Fatalf("unexpected time left: %v", cur.TimeLeft)
	}
}

func TestCurrentPeriodOutsideHours(t *testing.T) {
	ts := sampleSheet(t)
	if _, ok := ts.CurrentPeriod(504.5); ok {
		t.Fatalf("expected no period before school")
	}
	if _, ok := ts.CurrentPeriod(668.25); ok {
		t.Fatalf("expected no period after school")
	}
}

func TestPeriodsReturnsCopy(t *testing.T) {
	ts := sampleSheet(t)
	periods := ts.Periods()
	periods[0].Name = "changed"
	if ts.First().Name != "1" {
		t.Fatalf("sheet was mutated through Periods()")
	}
}
