package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func shiftAt(startHour, startMin, endHour, endMin int) Shift {
	return Shift{
		StartTime: time.Date(2000, 1, 1, startHour, startMin, 0, 0, time.UTC),
		EndTime:   time.Date(2000, 1, 1, endHour, endMin, 0, 0, time.UTC),
	}
}

func TestCrossesMidnight(t *testing.T) {
	assert.False(t, shiftAt(8, 0, 16, 0).CrossesMidnight())
	assert.True(t, shiftAt(22, 0, 6, 0).CrossesMidnight())
	assert.True(t, shiftAt(9, 0, 9, 0).CrossesMidnight())
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 480, shiftAt(8, 0, 16, 0).DurationMinutes())
	assert.Equal(t, 480, shiftAt(22, 0, 6, 0).DurationMinutes())
	assert.Equal(t, 510, shiftAt(23, 30, 8, 0).DurationMinutes())
}

func TestStartOnEndOn(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("day shift stays on the anchor date", func(t *testing.T) {
		s := shiftAt(8, 0, 16, 0)
		assert.Equal(t, time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC), s.StartOn(date))
		assert.Equal(t, time.Date(2025, 3, 14, 16, 0, 0, 0, time.UTC), s.EndOn(date))
	})

	t.Run("overnight shift ends the next day", func(t *testing.T) {
		s := shiftAt(22, 0, 6, 0)
		assert.Equal(t, time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC), s.StartOn(date))
		assert.Equal(t, time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC), s.EndOn(date))
	})

	t.Run("month boundary rolls over", func(t *testing.T) {
		s := shiftAt(23, 0, 7, 0)
		eom := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 4, 1, 7, 0, 0, 0, time.UTC), s.EndOn(eom))
	})
}
