package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type patrolRecordRepository struct {
	db *database.DB
}

func NewPatrolRecordRepository(db *database.DB) patrolrecord.PatrolRecordRepository {
	return &patrolRecordRepository{db: db}
}

const recordColumns = `id, assignment_id, status, actual_start, actual_end, created_at, updated_at`

func scanRecord(row pgx.Row) (patrolrecord.PatrolRecord, error) {
	var rec patrolrecord.PatrolRecord
	err := row.Scan(
		&rec.ID, &rec.AssignmentID, &rec.Status,
		&rec.ActualStart, &rec.ActualEnd, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *patrolRecordRepository) Create(ctx context.Context, rec patrolrecord.PatrolRecord) (patrolrecord.PatrolRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patrol_records (id, assignment_id, status, actual_start, actual_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		rec.ID, rec.AssignmentID, rec.Status, rec.ActualStart, rec.ActualEnd, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return patrolrecord.PatrolRecord{}, fmt.Errorf("failed to create patrol record: %w", err)
	}
	return rec, nil
}

func (r *patrolRecordRepository) GetActiveByAssignment(ctx context.Context, assignmentID string) (patrolrecord.PatrolRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM patrol_records
		WHERE assignment_id = $1 AND status != 'cancelado' AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patrolrecord.PatrolRecord{}, patrolrecord.ErrRecordNotFound
		}
		return patrolrecord.PatrolRecord{}, fmt.Errorf("failed to get patrol record: %w", err)
	}
	return rec, nil
}

func (r *patrolRecordRepository) GetInProgressByGuard(ctx context.Context, guardID string) (patrolrecord.PatrolRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.assignment_id, r.status, r.actual_start, r.actual_end, r.created_at, r.updated_at
		FROM patrol_records r
		JOIN patrol_assignments a ON a.id = r.assignment_id
		WHERE a.guard_id = $1
		  AND r.status = 'en_progreso'
		  AND r.deleted_at IS NULL
		  AND a.deleted_at IS NULL
		ORDER BY r.actual_start DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, guardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patrolrecord.PatrolRecord{}, patrolrecord.ErrRecordNotFound
		}
		return patrolrecord.PatrolRecord{}, fmt.Errorf("failed to get in-progress record: %w", err)
	}
	return rec, nil
}

func (r *patrolRecordRepository) ListByGuardAndStatus(ctx context.Context, guardID, status string) ([]patrolrecord.PatrolRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.assignment_id, r.status, r.actual_start, r.actual_end, r.created_at, r.updated_at
		FROM patrol_records r
		JOIN patrol_assignments a ON a.id = r.assignment_id
		WHERE a.guard_id = $1
		  AND r.status = $2
		  AND r.deleted_at IS NULL
		  AND a.deleted_at IS NULL
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, guardID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrol records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *patrolRecordRepository) ListByStatus(ctx context.Context, status string) ([]patrolrecord.PatrolRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM patrol_records
		WHERE status = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrol records by status: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]patrolrecord.PatrolRecord, error) {
	var records []patrolrecord.PatrolRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patrol record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Transition is a compare-and-swap on status: zero matched rows means the
// record left fromStatus concurrently and the caller loses the race.
func (r *patrolRecordRepository) Transition(ctx context.Context, id, fromStatus, toStatus string, actualStart, actualEnd *time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE patrol_records
		SET status = $3,
			actual_start = COALESCE($4, actual_start),
			actual_end = COALESCE($5, actual_end),
			updated_at = NOW()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL
	`, id, fromStatus, toStatus, actualStart, actualEnd)
	if err != nil {
		return fmt.Errorf("failed to transition patrol record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return patrolrecord.ErrStatusConflict
	}
	return nil
}

func (r *patrolRecordRepository) Cancel(ctx context.Context, assignmentID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE patrol_records
		SET status = 'cancelado', updated_at = NOW()
		WHERE assignment_id = $1
		  AND status IN ('pendiente', 'en_progreso')
		  AND deleted_at IS NULL
	`, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to cancel patrol record: %w", err)
	}
	return nil
}
