package timeofday

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"8:25", 505},
		{"1:30", 810},
		{"9:25", 565},
		{"12:55", 775},
		{"4:59", 1019},
		{"5:00", 300},
		{"10:00", 600},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "8", "8:xx", "x:30", "8:30:00", "24:00", "8:60"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("Parse(%q): expected ErrInvalidTime, got %v", in, err)
		}
	}
}

func TestSplit(t *testing.T) {
	start, end, err := Split("12:55-1:27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != 775 || end != 807 {
		t.Fatalf("unexpected range: %d-%d", start, end)
	}
	if _, _, err := Split("12:55"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		minutes float64
		units   Units
		want    string
	}{
		{810, HoursMinutes, "13:30"},
		{505, HoursMinutes, "8:25"},
		{601, HoursMinutes, "10:01"},
		{7.5, MinutesSeconds, "7:30"},
		{75.25, MinutesSeconds, "75:15"},
		{0.5, MinutesSeconds, "0:30"},
		{61.5, Units{Hour: true, Minute: true, Second: true}, "1:01:30"},
		{45, Units{Minute: true}, "45"},
		{125, Units{Hour: true}, "2"},
		{0.25, Units{Second: true}, "15"},
	}
	for _, tt := range tests {
		got, err := Format(tt.minutes, tt.units)
		if err != nil {
			t.Fatalf("Format(%v, %+v): unexpected error: %v", tt.minutes, tt.units, err)
		}
		if got != tt.want {
			t.Fatalf("Format(%v, %+v) = %q, want %q", tt.minutes, tt.units, got, tt.want)
		}
	}
}

func TestFormatRejectsHoursAndSecondsWithoutMinutes(t *testing.T) {
	_, err := Format(90, Units{Hour: true, Second: true})
	if !errors.Is(err, ErrInvalidUnits) {
		t.Fatalf("expected ErrInvalidUnits, got %v", err)
	}
}

func TestMinutes(t *testing.T) {
	at := time.Date(2024, 9, 3, 13, 30, 30, 0, time.Local)
	if got := Minutes(at); got != 810.5 {
		t.Fatalf("Minutes = %v, want 810.5", got)
	}
	if got := Now(FixedClock{T: at}); got != 810.5 {
		t.Fatalf("Now = %v, want 810.5", got)
	}
}
