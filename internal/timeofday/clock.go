package timeofday

import "time"

// Clock provides the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local system time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Now returns the clock's current time as fractional minutes past midnight.
func Now(c Clock) float64 {
	if c == nil {
		c = SystemClock{}
	}
	return Minutes(c.Now())
}

// At returns a clock fixed at the given minutes past midnight today.
func At(minutes float64) FixedClock {
	now := time.Now()
	whole := int(minutes)
	nsec := int((minutes - float64(whole)) * float64(time.Minute))
	return FixedClock{T: time.Date(now.Year(), now.Month(), now.Day(), 0, whole, 0, nsec, now.Location())}
}
