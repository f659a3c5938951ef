// Package timeofday converts between "H:MM" strings and minutes past midnight.
package timeofday

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Hours below this value are afternoon hours written on a 12-hour clock.
const afternoonCutoff = 5

var (
	ErrInvalidTime  = errors.New("invalid time of day")
	ErrInvalidUnits = errors.New("cannot include hours and seconds without minutes")
)

// Parse converts "H:MM" to minutes past midnight. Any hour below 5 is
// treated as PM, so "1:30" is 13:30.
func Parse(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: hour in %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: minute in %q", ErrInvalidTime, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidTime, s)
	}
	if hour < afternoonCutoff {
		hour += 12
	}
	return hour*60 + minute, nil
}

// Split parses a "H:MM-H:MM" range.
func Split(times string) (start, end int, err error) {
	halves := strings.Split(times, "-")
	if len(halves) != 2 {
		return 0, 0, fmt.Errorf("%w: range %q", ErrInvalidTime, times)
	}
	if start, err = Parse(halves[0]); err != nil {
		return 0, 0, err
	}
	if end, err = Parse(halves[1]); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Units selects which fields Format renders.
type Units struct {
	Hour   bool
	Minute bool
	Second bool
}

var (
	HoursMinutes   = Units{Hour: true, Minute: true}
	MinutesSeconds = Units{Minute: true, Second: true}
)

// Format renders minutes as "H:MM", "M:SS", "H:MM:SS" and so on. The most
// significant field is not padded; when hours are excluded the minute field
// carries the whole duration.
func Format(minutes float64, u Units) (string, error) {
	if u.Hour && !u.Minute && u.Second {
		return "", ErrInvalidUnits
	}
	var hour, minute, second int
	if u.Hour {
		hour = int(math.Floor(minutes / 60))
	}
	if u.Minute {
		minute = int(math.Floor(minutes - float64(hour*60)))
	}
	if u.Second {
		second = int(math.Floor((minutes - float64(hour*60) - float64(minute)) * 60))
	}

	fields := make([]string, 0, 3)
	if u.Hour {
		fields = append(fields, strconv.Itoa(hour))
	}
	if u.Minute {
		fields = append(fields, pad(minute, u.Hour))
	}
	if u.Second {
		fields = append(fields, pad(second, u.Minute))
	}
	return strings.Join(fields, ":"), nil
}

func pad(v int, padded bool) string {
	if padded && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// Minutes returns t as fractional minutes past midnight in t's location.
func Minutes(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
}
