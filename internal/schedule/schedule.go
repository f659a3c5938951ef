// Package schedule expands period tables into one time sheet per day type
// and lunch variant.
package schedule

import (
	"errors"

	"github.com/rowjay/bell-schedule/internal/timesheet"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// Matrix is indexed [day type][variant]. Variant is the lunch slot, which
// doubles as the grade track in the middle school.
type Matrix [][]*timesheet.TimeSheet

// Sheet returns the sheet at [day][variant]. A day with a single variant
// answers for every variant index.
func (m Matrix) Sheet(day, variant int) (*timesheet.TimeSheet, bool) {
	if day < 0 || day >= len(m) || variant < 0 {
		return nil, false
	}
	row := m[day]
	if len(row) == 1 {
		return row[0], true
	}
	if variant >= len(row) {
		return nil, false
	}
	return row[variant], true
}

// MaxVariants returns the widest row.
func (m Matrix) MaxVariants() int {
	widest := 0
	for _, row := range m {
		widest = max(widest, len(row))
	}
	return widest
}
