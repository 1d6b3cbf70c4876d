package assignment

import (
	"fmt"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/timewindow"
)

// checkShiftConflict rejects a candidate shift whose time window overlaps any
// of the guard's existing assignments on the same date. excludeID skips the
// assignment being updated. Pure check; the caller persists after success.
func checkShiftConflict(candidate shift.Shift, existing []assignment.Detail, excludeID string) error {
	candStart := timewindow.MinutesOfDay(candidate.StartTime)
	candEnd := timewindow.MinutesOfDay(candidate.EndTime)

	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		overlap, err := timewindow.RangesOverlap(
			candStart, candEnd,
			timewindow.MinutesOfDay(other.Shift.StartTime),
			timewindow.MinutesOfDay(other.Shift.EndTime),
		)
		if err != nil {
			return fmt.Errorf("failed to compare shift windows: %w", err)
		}
		if overlap {
			return &assignment.ConflictError{Conflicting: other}
		}
	}
	return nil
}
