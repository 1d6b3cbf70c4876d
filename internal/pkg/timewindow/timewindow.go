package timewindow

import (
	"errors"
	"time"
)

// ErrInvalidTime is returned when a minutes-of-day value falls outside 0-1439.
var ErrInvalidTime = errors.New("invalid time: minutes-of-day must be within 0-1439")

const minutesPerDay = 24 * 60

// MinutesOfDay projects a timestamp to minutes since midnight (0-1439),
// discarding the date. The projection uses the clock reading of t as-is;
// callers are expected to pass UTC times.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DurationMinutes returns the length of the window from start to end in
// minutes. When end reads at or earlier than start the window is assumed to
// cross midnight and a full day is added, so an equal start and end means a
// full day, matching Shift.CrossesMidnight.
func DurationMinutes(start, end time.Time) int {
	s := MinutesOfDay(start)
	e := MinutesOfDay(end)
	if e <= s {
		e += minutesPerDay
	}
	return e - s
}

// RangesOverlap reports whether two minutes-of-day ranges overlap. Either
// range may wrap midnight (end < start). Abutting ranges do not overlap.
func RangesOverlap(startA, endA, startB, endB int) (bool, error) {
	for _, m := range []int{startA, endA, startB, endB} {
		if m < 0 || m >= minutesPerDay {
			return false, ErrInvalidTime
		}
	}

	wrapsA := endA < startA
	wrapsB := endB < startB

	switch {
	case wrapsA && wrapsB:
		// Both cross midnight, so both cover it.
		return true, nil
	case wrapsA:
		// A covers [startA, 1440) and [0, endA). B overlaps unless it fits
		// entirely inside A's gap [endA, startA].
		return !(startB >= endA && endB <= startA), nil
	case wrapsB:
		return !(startA >= endB && endA <= startB), nil
	default:
		return !(endA <= startB || endB <= startA), nil
	}
}
