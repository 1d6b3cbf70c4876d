package assignment

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
)

// generateVisitSchedule materializes one pending visit record per route point
// per round, with check times evenly distributed across the shift window.
//
// For N points the shift (or round segment) is divided into N+1 equal
// intervals so no checkpoint lands exactly on the shift start or end. With R
// rounds the shift is first cut into R equal segments and each segment is
// distributed independently. Overnight shifts roll the check time to the next
// calendar day through plain time arithmetic. An empty route yields zero
// records.
func generateVisitSchedule(a assignment.PatrolAssignment, points []patrol.RoutePoint, s shift.Shift, now time.Time) []visit.CheckpointVisit {
	if len(points) == 0 {
		return nil
	}

	sorted := make([]patrol.RoutePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	rounds := a.Rounds
	if rounds < 1 {
		rounds = 1
	}

	shiftStart := s.StartOn(a.Date)
	segment := time.Duration(s.DurationMinutes()) * time.Minute / time.Duration(rounds)
	interval := segment / time.Duration(len(sorted)+1)

	visits := make([]visit.CheckpointVisit, 0, rounds*len(sorted))
	for round := 1; round <= rounds; round++ {
		segmentStart := shiftStart.Add(time.Duration(round-1) * segment)
		for i, rp := range sorted {
			visits = append(visits, visit.CheckpointVisit{
				ID:           uuid.NewString(),
				AssignmentID: a.ID,
				CheckpointID: rp.CheckpointID,
				RoundNumber:  round,
				Status:       visit.StatusPending,
				CheckTime:    segmentStart.Add(time.Duration(i+1) * interval),
				RealCheck:    nil,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}
	}
	return visits
}
