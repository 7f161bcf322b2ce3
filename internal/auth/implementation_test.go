// internal/auth/implementation_test.go
package auth

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdesk/internal/fault"
	"libdesk/internal/storage"
)

// setupTestDB connects to PostgreSQL via the PG* environment variables and
// skips the test when no database is reachable.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("PGHOST", "localhost"),
		envOr("PGPORT", "5432"),
		envOr("PGUSER", "user"),
		envOr("PGPASSWORD", "password"),
		envOr("PGDATABASE", "testdb"))

	db, err := sqlx.Open("postgres", dsn)
	require.NoError(t, err)

	if err := db.Ping(); err != nil {
		t.Skipf("skipping: could not connect to postgres: %v", err)
	}

	require.NoError(t, storage.Migrate(context.Background(), db))
	_, err = db.Exec(`TRUNCATE TABLE issues, items, memberships, users CASCADE`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestDefaultAccountsSeedAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAccounts(ctx))
	// Seeding twice is a no-op.
	require.NoError(t, svc.EnsureDefaultAccounts(ctx))

	admin, err := svc.Authenticate(ctx, "adm", "adm")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	regular, err := svc.Authenticate(ctx, "user", "user")
	require.NoError(t, err)
	assert.False(t, regular.IsAdmin)
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAccounts(ctx))

	_, err := svc.Authenticate(ctx, "adm", "wrong")
	require.Error(t, err)
	assert.Equal(t, fault.NotFound, fault.KindOf(err))
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "dormant", "Dormant User", "pw", false, false)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "dormant", "pw")
	require.Error(t, err)
	assert.Equal(t, fault.NotFound, fault.KindOf(err))
}

func TestCreateUserDuplicateIsConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "clerk", "First Clerk", "pw", false, true)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "clerk", "Second Clerk", "pw", false, true)
	require.Error(t, err)
	assert.Equal(t, fault.Conflict, fault.KindOf(err))
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.CreateUser(context.Background(), "", "Name", "pw", false, true)
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))

	_, err = svc.CreateUser(context.Background(), "id", "", "pw", false, true)
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))

	_, err = svc.CreateUser(context.Background(), "id", "Name", "", false, true)
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}
