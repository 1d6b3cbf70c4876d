package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(hour, min int) time.Time {
	return time.Date(2000, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, MinutesOfDay(clock(0, 0)))
	assert.Equal(t, 8*60, MinutesOfDay(clock(8, 0)))
	assert.Equal(t, 23*60+59, MinutesOfDay(clock(23, 59)))
}

func TestDurationMinutes(t *testing.T) {
	t.Run("same day", func(t *testing.T) {
		assert.Equal(t, 480, DurationMinutes(clock(8, 0), clock(16, 0)))
	})

	t.Run("overnight", func(t *testing.T) {
		// 22:00 -> 06:00 spans midnight
		assert.Equal(t, 480, DurationMinutes(clock(22, 0), clock(6, 0)))
	})

	t.Run("full day when start equals end", func(t *testing.T) {
		assert.Equal(t, 1440, DurationMinutes(clock(9, 0), clock(9, 0)))
	})
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                           string
		startA, endA, startB, endB     int
		want                           bool
	}{
		{"disjoint day windows", 8 * 60, 12 * 60, 13 * 60, 17 * 60, false},
		{"abutting windows do not overlap", 8 * 60, 16 * 60, 16 * 60, 23 * 60, false},
		{"one minute overlap", 8 * 60, 16*60 + 1, 16 * 60, 23 * 60, true},
		{"contained window", 8 * 60, 20 * 60, 10 * 60, 12 * 60, true},
		{"both overnight always collide", 22 * 60, 6 * 60, 23 * 60, 5 * 60, true},
		{"overnight vs morning clear", 22 * 60, 6 * 60, 8 * 60, 12 * 60, false},
		{"overnight catches late evening", 22 * 60, 6 * 60, 21 * 60, 23 * 60, true},
		{"overnight catches early morning", 22 * 60, 6 * 60, 5 * 60, 9 * 60, true},
		{"day window clear of overnight gap", 6 * 60, 22 * 60, 23 * 60, 23*60 + 30, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RangesOverlap(tc.startA, tc.endA, tc.startB, tc.endB)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			// Overlap is symmetric.
			sym, err := RangesOverlap(tc.startB, tc.endB, tc.startA, tc.endA)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sym)
		})
	}
}

func TestRangesOverlapRejectsBadInput(t *testing.T) {
	_, err := RangesOverlap(-1, 100, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = RangesOverlap(0, 100, 0, 1440)
	assert.ErrorIs(t, err, ErrInvalidTime)
}
