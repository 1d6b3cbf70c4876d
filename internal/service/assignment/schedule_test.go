package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
)

func testShift(startHour, endHour int) shift.Shift {
	return shift.Shift{
		ID:        "shift-1",
		StartTime: time.Date(2000, 1, 1, startHour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2000, 1, 1, endHour, 0, 0, 0, time.UTC),
	}
}

func testPoints(checkpointIDs ...string) []patrol.RoutePoint {
	points := make([]patrol.RoutePoint, 0, len(checkpointIDs))
	for i, id := range checkpointIDs {
		points = append(points, patrol.RoutePoint{CheckpointID: id, Order: i + 1})
	}
	return points
}

func TestGenerateVisitSchedule(t *testing.T) {
	now := time.Now().UTC()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("single round distributes evenly", func(t *testing.T) {
		a := assignment.PatrolAssignment{ID: "a1", Date: date, Rounds: 1}
		// 08:00-16:00 with 3 points: 4 intervals of 120 minutes.
		visits := generateVisitSchedule(a, testPoints("cpA", "cpB", "cpC"), testShift(8, 16), now)
		require.Len(t, visits, 3)

		assert.Equal(t, date.Add(10*time.Hour), visits[0].CheckTime)
		assert.Equal(t, date.Add(12*time.Hour), visits[1].CheckTime)
		assert.Equal(t, date.Add(14*time.Hour), visits[2].CheckTime)

		for i, v := range visits {
			assert.Equal(t, "a1", v.AssignmentID)
			assert.Equal(t, 1, v.RoundNumber)
			assert.Equal(t, visit.StatusPending, v.Status)
			assert.Nil(t, v.RealCheck)
			assert.NotEmpty(t, v.ID, i)
		}
	})

	t.Run("route order wins over slice order", func(t *testing.T) {
		a := assignment.PatrolAssignment{ID: "a1", Date: date, Rounds: 1}
		points := []patrol.RoutePoint{
			{CheckpointID: "cpC", Order: 3},
			{CheckpointID: "cpA", Order: 1},
			{CheckpointID: "cpB", Order: 2},
		}
		visits := generateVisitSchedule(a, points, testShift(8, 16), now)
		require.Len(t, visits, 3)
		assert.Equal(t, "cpA", visits[0].CheckpointID)
		assert.Equal(t, "cpB", visits[1].CheckpointID)
		assert.Equal(t, "cpC", visits[2].CheckpointID)
		assert.True(t, visits[0].CheckTime.Before(visits[1].CheckTime))
		assert.True(t, visits[1].CheckTime.Before(visits[2].CheckTime))
	})

	t.Run("multiple rounds segment the shift", func(t *testing.T) {
		a := assignment.PatrolAssignment{ID: "a1", Date: date, Rounds: 2}
		// 08:00-16:00, 2 rounds: segments 08:00-12:00 and 12:00-16:00. One
		// point per segment sits at the midpoint.
		visits := generateVisitSchedule(a, testPoints("cpA"), testShift(8, 16), now)
		require.Len(t, visits, 2)

		assert.Equal(t, 1, visits[0].RoundNumber)
		assert.Equal(t, date.Add(10*time.Hour), visits[0].CheckTime)
		assert.Equal(t, 2, visits[1].RoundNumber)
		assert.Equal(t, date.Add(14*time.Hour), visits[1].CheckTime)
	})

	t.Run("overnight shift rolls past midnight", func(t *testing.T) {
		a := assignment.PatrolAssignment{ID: "a1", Date: date, Rounds: 1}
		// 22:00-06:00 with 3 points: checks at 00:00, 02:00, 04:00 next day.
		visits := generateVisitSchedule(a, testPoints("cpA", "cpB", "cpC"), testShift(22, 6), now)
		require.Len(t, visits, 3)

		nextDay := date.AddDate(0, 0, 1)
		assert.Equal(t, nextDay, visits[0].CheckTime)
		assert.Equal(t, nextDay.Add(2*time.Hour), visits[1].CheckTime)
		assert.Equal(t, nextDay.Add(4*time.Hour), visits[2].CheckTime)
	})

	t.Run("rounds below one default to one", func(t *testing.T) {
		a := assignment.PatrolAssignment{ID: "a1", Date: date, Rounds: 0}
		visits := generateVisitSchedule(a, testPoints("cpA", "cpB"), testShift(8, 16), now)
		require.Len(t, visits, 2)
		assert.Equal(t, 1, visits[0].RoundNumber)
		assert.Equal(t, 1, visits[1].RoundNumber)
	})

	t.Run("empty route yields no records", func(t *testing.T) {
		a := assignment.PatrolAssignment{ID: "a1", Date: date, Rounds: 3}
		assert.Empty(t, generateVisitSchedule(a, nil, testShift(8, 16), now))
	})
}
