package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type patrolRepository struct {
	db *database.DB
}

func NewPatrolRepository(db *database.DB) patrol.PatrolRepository {
	return &patrolRepository{db: db}
}

func (r *patrolRepository) Create(ctx context.Context, p patrol.Patrol) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patrols (id, branch_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := q.Exec(ctx, query, p.ID, p.BranchID, p.Name, p.CreatedAt, p.UpdatedAt); err != nil {
		return patrol.Patrol{}, fmt.Errorf("failed to create patrol: %w", err)
	}

	for _, rp := range p.RoutePoints {
		if err := r.insertRoutePoint(ctx, q, p.ID, rp); err != nil {
			return patrol.Patrol{}, err
		}
	}
	return p, nil
}

func (r *patrolRepository) insertRoutePoint(ctx context.Context, q database.Querier, patrolID string, rp patrol.RoutePoint) error {
	query := `
		INSERT INTO route_points (id, patrol_id, checkpoint_id, point_order, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query, rp.ID, patrolID, rp.CheckpointID, rp.Order, rp.Latitude, rp.Longitude)
	if err != nil {
		return fmt.Errorf("failed to create route point: %w", err)
	}
	return nil
}

func (r *patrolRepository) GetByID(ctx context.Context, id string) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, name, created_at, updated_at
		FROM patrols
		WHERE id = $1 AND deleted_at IS NULL
	`

	var p patrol.Patrol
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.BranchID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patrol.Patrol{}, patrol.ErrPatrolNotFound
		}
		return patrol.Patrol{}, fmt.Errorf("failed to get patrol: %w", err)
	}

	points, err := loadRoutePoints(ctx, q, id)
	if err != nil {
		return patrol.Patrol{}, err
	}
	p.RoutePoints = points
	return p, nil
}

// loadRoutePoints loads a patrol's points ordered by route position with the
// checkpoint joined in. Shared with the assignment detail query.
func loadRoutePoints(ctx context.Context, q database.Querier, patrolID string) ([]patrol.RoutePoint, error) {
	query := `
		SELECT rp.id, rp.patrol_id, rp.checkpoint_id, rp.point_order, rp.latitude, rp.longitude,
			   c.id, c.branch_id, c.name, c.tag_uid, c.latitude, c.longitude, c.created_at, c.updated_at
		FROM route_points rp
		JOIN checkpoints c ON c.id = rp.checkpoint_id
		WHERE rp.patrol_id = $1
		ORDER BY rp.point_order
	`

	rows, err := q.Query(ctx, query, patrolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list route points: %w", err)
	}
	defer rows.Close()

	var points []patrol.RoutePoint
	for rows.Next() {
		var rp patrol.RoutePoint
		var c checkpoint.Checkpoint
		err := rows.Scan(
			&rp.ID, &rp.PatrolID, &rp.CheckpointID, &rp.Order, &rp.Latitude, &rp.Longitude,
			&c.ID, &c.BranchID, &c.Name, &c.TagUID, &c.Latitude, &c.Longitude, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route point: %w", err)
		}
		rp.Checkpoint = &c
		points = append(points, rp)
	}
	return points, rows.Err()
}

func (r *patrolRepository) ListByBranch(ctx context.Context, branchID string) ([]patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, name, created_at, updated_at
		FROM patrols
		WHERE branch_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrols: %w", err)
	}
	defer rows.Close()

	var patrols []patrol.Patrol
	for rows.Next() {
		var p patrol.Patrol
		if err := rows.Scan(&p.ID, &p.BranchID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patrol: %w", err)
		}
		patrols = append(patrols, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range patrols {
		points, err := loadRoutePoints(ctx, q, patrols[i].ID)
		if err != nil {
			return nil, err
		}
		patrols[i].RoutePoints = points
	}
	return patrols, nil
}

func (r *patrolRepository) ReplaceRoutePoints(ctx context.Context, patrolID string, points []patrol.RoutePoint) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM route_points WHERE patrol_id = $1`, patrolID); err != nil {
			return fmt.Errorf("failed to clear route points: %w", err)
		}
		for _, rp := range points {
			if err := r.insertRoutePoint(ctx, tx, patrolID, rp); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `UPDATE patrols SET updated_at = NOW() WHERE id = $1`, patrolID)
		return err
	})
}

func (r *patrolRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE patrols SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete patrol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return patrol.ErrPatrolNotFound
	}
	return nil
}
