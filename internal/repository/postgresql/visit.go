package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
)

type visitRepository struct {
	db *database.DB
}

func NewVisitRepository(db *database.DB) visit.VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) CreateBatch(ctx context.Context, visits []visit.CheckpointVisit) error {
	if len(visits) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	// Multi-row VALUES insert; a schedule is at most a few hundred rows.
	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO checkpoint_visits
			(id, assignment_id, checkpoint_id, round_number, status, check_time, real_check, created_at, updated_at)
		VALUES `)

	args := make([]interface{}, 0, len(visits)*9)
	for i, v := range visits {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args,
			v.ID, v.AssignmentID, v.CheckpointID, v.RoundNumber, v.Status,
			v.CheckTime, v.RealCheck, v.CreatedAt, v.UpdatedAt,
		)
	}

	if _, err := q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to batch insert visits: %w", err)
	}
	return nil
}

func (r *visitRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]visit.CheckpointVisit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, assignment_id, checkpoint_id, round_number, status, check_time, real_check, created_at, updated_at
		FROM checkpoint_visits
		WHERE assignment_id = $1 AND deleted_at IS NULL
		ORDER BY round_number, check_time
	`

	rows, err := q.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	var visits []visit.CheckpointVisit
	for rows.Next() {
		var v visit.CheckpointVisit
		err := rows.Scan(
			&v.ID, &v.AssignmentID, &v.CheckpointID, &v.RoundNumber, &v.Status,
			&v.CheckTime, &v.RealCheck, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *visitRepository) List(ctx context.Context, filter visit.Filter) ([]visit.CheckpointVisit, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.AssignmentID != nil {
		addCondition("v.assignment_id = $%d", *filter.AssignmentID)
	}
	if filter.BranchID != nil {
		addCondition("c.branch_id = $%d", *filter.BranchID)
	}
	if filter.Status != nil {
		addCondition("v.status = $%d", *filter.Status)
	}
	if filter.StartDate != nil {
		addCondition("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("a.date <= $%d", *filter.EndDate)
	}

	where := ""
	if len(conditions) > 0 {
		where = " AND " + strings.Join(conditions, " AND ")
	}

	baseFrom := `
		FROM checkpoint_visits v
		JOIN checkpoints c ON c.id = v.checkpoint_id
		JOIN patrol_assignments a ON a.id = v.assignment_id
		JOIN guards g ON g.id = a.guard_id
		WHERE v.deleted_at IS NULL`

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*)`+baseFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count visits: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT v.id, v.assignment_id, v.checkpoint_id, v.round_number, v.status,
			   v.check_time, v.real_check, v.created_at, v.updated_at,
			   c.name, g.full_name
		%s%s
		ORDER BY v.check_time DESC
		LIMIT $%d OFFSET $%d`, baseFrom, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	var visits []visit.CheckpointVisit
	for rows.Next() {
		var v visit.CheckpointVisit
		err := rows.Scan(
			&v.ID, &v.AssignmentID, &v.CheckpointID, &v.RoundNumber, &v.Status,
			&v.CheckTime, &v.RealCheck, &v.CreatedAt, &v.UpdatedAt,
			&v.CheckpointName, &v.GuardName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, total, rows.Err()
}

// Mark finalizes a visit record. The status predicate makes the update a
// compare-and-swap: of two racing scans only the first matches a row, the
// second sees zero rows affected and gets ErrAlreadyMarked.
func (r *visitRepository) Mark(ctx context.Context, id string, status string, realCheck time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE checkpoint_visits
		SET status = $2, real_check = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND deleted_at IS NULL
	`, id, status, realCheck)
	if err != nil {
		return fmt.Errorf("failed to mark visit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return visit.ErrAlreadyMarked
	}
	return nil
}

func (r *visitRepository) MarkOverduePending(ctx context.Context, now time.Time, cutoffMinutes int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE checkpoint_visits
		SET status = 'missed', updated_at = NOW()
		WHERE status = 'pending'
		  AND deleted_at IS NULL
		  AND check_time < $1 - make_interval(mins => $2)
	`, now, cutoffMinutes)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue visits: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *visitRepository) SoftDeleteByAssignment(ctx context.Context, assignmentID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE checkpoint_visits
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE assignment_id = $1 AND deleted_at IS NULL
	`, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to delete visits: %w", err)
	}
	return nil
}
