package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type guardRepository struct {
	db *database.DB
}

func NewGuardRepository(db *database.DB) guard.GuardRepository {
	return &guardRepository{db: db}
}

const guardColumns = `id, full_name, email, password_hash, role, biometric_id, phone, created_at, updated_at`

func scanGuard(row pgx.Row) (guard.Guard, error) {
	var g guard.Guard
	err := row.Scan(
		&g.ID, &g.FullName, &g.Email, &g.PasswordHash, &g.Role,
		&g.BiometricID, &g.Phone, &g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}

func (r *guardRepository) Create(ctx context.Context, g guard.Guard) (guard.Guard, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO guards (id, full_name, email, password_hash, role, biometric_id, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query,
		g.ID, g.FullName, g.Email, g.PasswordHash, g.Role, g.BiometricID, g.Phone, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "guards_email_key":
				return guard.Guard{}, guard.ErrEmailExists
			case "guards_biometric_id_key":
				return guard.Guard{}, guard.ErrBiometricIDExists
			}
		}
		return guard.Guard{}, fmt.Errorf("failed to create guard: %w", err)
	}
	return g, nil
}

func (r *guardRepository) GetByID(ctx context.Context, id string) (guard.Guard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + guardColumns + ` FROM guards WHERE id = $1 AND deleted_at IS NULL`
	g, err := scanGuard(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return guard.Guard{}, guard.ErrGuardNotFound
		}
		return guard.Guard{}, fmt.Errorf("failed to get guard: %w", err)
	}
	return g, nil
}

func (r *guardRepository) GetByEmail(ctx context.Context, email string) (guard.Guard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + guardColumns + ` FROM guards WHERE email = $1 AND deleted_at IS NULL`
	g, err := scanGuard(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return guard.Guard{}, guard.ErrGuardNotFound
		}
		return guard.Guard{}, fmt.Errorf("failed to get guard by email: %w", err)
	}
	return g, nil
}

func (r *guardRepository) GetByBiometricID(ctx context.Context, biometricID string) (guard.Guard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + guardColumns + ` FROM guards WHERE biometric_id = $1 AND deleted_at IS NULL`
	g, err := scanGuard(q.QueryRow(ctx, query, biometricID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return guard.Guard{}, guard.ErrUnknownBiometric
		}
		return guard.Guard{}, fmt.Errorf("failed to get guard by biometric id: %w", err)
	}
	return g, nil
}

func (r *guardRepository) GetBranchIDs(ctx context.Context, guardID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT branch_id FROM guard_branches WHERE guard_id = $1`
	rows, err := q.Query(ctx, query, guardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guard branches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan branch id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *guardRepository) SetBranches(ctx context.Context, guardID string, branchIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM guard_branches WHERE guard_id = $1`, guardID); err != nil {
		return fmt.Errorf("failed to clear guard branches: %w", err)
	}
	for _, branchID := range branchIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO guard_branches (guard_id, branch_id) VALUES ($1, $2)`,
			guardID, branchID,
		)
		if err != nil {
			return fmt.Errorf("failed to set guard branch: %w", err)
		}
	}
	return nil
}

func (r *guardRepository) List(ctx context.Context) ([]guard.Guard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + guardColumns + ` FROM guards WHERE deleted_at IS NULL ORDER BY full_name`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guards: %w", err)
	}
	defer rows.Close()

	var guards []guard.Guard
	for rows.Next() {
		g, err := scanGuard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guard: %w", err)
		}
		guards = append(guards, g)
	}
	return guards, rows.Err()
}
