package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type checkpointRepository struct {
	db *database.DB
}

func NewCheckpointRepository(db *database.DB) checkpoint.CheckpointRepository {
	return &checkpointRepository{db: db}
}

const checkpointColumns = `id, branch_id, name, tag_uid, latitude, longitude, created_at, updated_at`

func scanCheckpoint(row pgx.Row) (checkpoint.Checkpoint, error) {
	var c checkpoint.Checkpoint
	err := row.Scan(
		&c.ID, &c.BranchID, &c.Name, &c.TagUID,
		&c.Latitude, &c.Longitude, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *checkpointRepository) Create(ctx context.Context, c checkpoint.Checkpoint) (checkpoint.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checkpoints (id, branch_id, name, tag_uid, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		c.ID, c.BranchID, c.Name, c.TagUID, c.Latitude, c.Longitude, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return checkpoint.Checkpoint{}, checkpoint.ErrTagUIDExists
		}
		return checkpoint.Checkpoint{}, fmt.Errorf("failed to create checkpoint: %w", err)
	}
	return c, nil
}

func (r *checkpointRepository) GetByID(ctx context.Context, id string) (checkpoint.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + checkpointColumns + ` FROM checkpoints WHERE id = $1 AND deleted_at IS NULL`
	c, err := scanCheckpoint(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkpoint.Checkpoint{}, checkpoint.ErrCheckpointNotFound
		}
		return checkpoint.Checkpoint{}, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	return c, nil
}

func (r *checkpointRepository) GetByTagUID(ctx context.Context, tagUID string) (checkpoint.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + checkpointColumns + ` FROM checkpoints WHERE tag_uid = $1 AND deleted_at IS NULL`
	c, err := scanCheckpoint(q.QueryRow(ctx, query, tagUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkpoint.Checkpoint{}, checkpoint.ErrCheckpointNotFound
		}
		return checkpoint.Checkpoint{}, fmt.Errorf("failed to get checkpoint by tag uid: %w", err)
	}
	return c, nil
}

func (r *checkpointRepository) ListByBranch(ctx context.Context, branchID string) ([]checkpoint.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + checkpointColumns + ` FROM checkpoints WHERE branch_id = $1 AND deleted_at IS NULL ORDER BY name`
	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []checkpoint.Checkpoint
	for rows.Next() {
		c, err := scanCheckpoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		checkpoints = append(checkpoints, c)
	}
	return checkpoints, rows.Err()
}

func (r *checkpointRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE checkpoints SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return checkpoint.ErrCheckpointNotFound
	}
	return nil
}
