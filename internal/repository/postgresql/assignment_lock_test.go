package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
	"github.com/guardtrack/patrol-backend-go/internal/repository/postgresql"
)

// testDB connects using TEST_DATABASE_URL, skipping the test when it is not
// set. Advisory lock tests need a live server but no tables.
func testDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func lockInTx(ctx context.Context, db *database.DB, guardID string, date time.Time) (pgx.Tx, error) {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txCtx := context.WithValue(ctx, "tx", tx)
	repo := postgresql.NewAssignmentRepository(db)
	if err := repo.LockGuardDate(txCtx, guardID, date); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	return tx, nil
}

func TestLockGuardDateSerializesSameGuardAndDate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	guardID := "2f1b8a52-9c3d-4e7a-8b15-6d0f4c9a1e33"
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	first, err := lockInTx(ctx, db, guardID, date)
	require.NoError(t, err)
	defer first.Rollback(ctx)

	acquired := make(chan error, 1)
	go func() {
		second, err := lockInTx(ctx, db, guardID, date)
		if err == nil {
			_ = second.Rollback(ctx)
		}
		acquired <- err
	}()

	// The second transaction must wait for the first to release the lock.
	select {
	case err := <-acquired:
		t.Fatalf("second transaction acquired the lock while the first held it: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, first.Rollback(ctx))

	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second transaction never acquired the lock after release")
	}
}

func TestLockGuardDateIndependentKeys(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	guardID := "2f1b8a52-9c3d-4e7a-8b15-6d0f4c9a1e33"
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	first, err := lockInTx(ctx, db, guardID, date)
	require.NoError(t, err)
	defer first.Rollback(ctx)

	// A different date for the same guard, and the same date for another
	// guard, lock distinct keys and do not block.
	otherDate, err := lockInTx(ctx, db, guardID, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	defer otherDate.Rollback(ctx)

	otherGuard, err := lockInTx(ctx, db, "7c4e2d19-5a8f-4b36-9e02-1f6a8d3c5b44", date)
	require.NoError(t, err)
	defer otherGuard.Rollback(ctx)
}
