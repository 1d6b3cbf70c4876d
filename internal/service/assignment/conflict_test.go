package assignment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
)

func detailWithShift(id string, startHour, endHour int) assignment.Detail {
	return assignment.Detail{
		PatrolAssignment: assignment.PatrolAssignment{
			ID:   id,
			Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		Shift: testShift(startHour, endHour),
	}
}

func TestCheckShiftConflict(t *testing.T) {
	t.Run("no existing assignments", func(t *testing.T) {
		assert.NoError(t, checkShiftConflict(testShift(8, 16), nil, ""))
	})

	t.Run("disjoint windows pass", func(t *testing.T) {
		existing := []assignment.Detail{detailWithShift("a1", 0, 7)}
		assert.NoError(t, checkShiftConflict(testShift(8, 16), existing, ""))
	})

	t.Run("abutting windows pass", func(t *testing.T) {
		// Night shift ends exactly when the day shift starts.
		existing := []assignment.Detail{detailWithShift("a1", 16, 23)}
		assert.NoError(t, checkShiftConflict(testShift(8, 16), existing, ""))
	})

	t.Run("overlapping windows conflict", func(t *testing.T) {
		existing := []assignment.Detail{detailWithShift("a1", 12, 20)}
		err := checkShiftConflict(testShift(8, 16), existing, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, assignment.ErrShiftConflict)

		var conflict *assignment.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "a1", conflict.Conflicting.ID)
	})

	t.Run("overnight candidate catches morning shift", func(t *testing.T) {
		existing := []assignment.Detail{detailWithShift("a1", 5, 13)}
		err := checkShiftConflict(testShift(22, 6), existing, "")
		assert.ErrorIs(t, err, assignment.ErrShiftConflict)
	})

	t.Run("overnight candidate clears midday shift", func(t *testing.T) {
		existing := []assignment.Detail{detailWithShift("a1", 9, 17)}
		assert.NoError(t, checkShiftConflict(testShift(22, 6), existing, ""))
	})

	t.Run("excluded assignment is skipped", func(t *testing.T) {
		existing := []assignment.Detail{detailWithShift("a1", 8, 16)}
		assert.NoError(t, checkShiftConflict(testShift(8, 16), existing, "a1"))
		assert.Error(t, checkShiftConflict(testShift(8, 16), existing, "a2"))
	})
}
