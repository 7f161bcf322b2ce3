// internal/catalog/implementation_test.go
package catalog

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

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

func validNewItem() NewItem {
	return NewItem{
		Type:            "Book",
		Name:            "The Go Programming Language",
		AuthorName:      "Donovan and Kernighan",
		Category:        "Programming",
		Cost:            "45.50",
		ProcurementDate: "2024-01-05",
		Quantity:        "3",
	}
}

func TestAddItem(t *testing.T) {
	db := setupTestDB(t)
	svc := &service{db: db, now: func() time.Time {
		return time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	}}

	item, err := svc.AddItem(context.Background(), validNewItem())
	require.NoError(t, err)

	assert.Equal(t, "B20240105001", item.SerialNo)
	assert.Equal(t, TypeBook, item.Type)
	assert.Equal(t, 3, item.TotalCopies)
	assert.Equal(t, 3, item.AvailableCopies)
	assert.Equal(t, StatusAvailable, item.CurrentStatus)

	stored, err := svc.GetItem(context.Background(), item.SerialNo)
	require.NoError(t, err)
	assert.Equal(t, 45.50, stored.Cost)
	assert.Equal(t, "2024-01-05", stored.ProcurementDate.Format("2006-01-02"))
}

func TestAddItemMovieGetsMoviePrefix(t *testing.T) {
	db := setupTestDB(t)
	svc := &service{db: db, now: func() time.Time {
		return time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	}}

	in := validNewItem()
	in.Type = "Movie"
	in.Name = "The Seventh Seal"
	in.AuthorName = "Ingmar Bergman"

	item, err := svc.AddItem(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "MV20240105001", item.SerialNo)
	assert.Equal(t, TypeMovie, item.Type)
}

func TestAddItemDefaultsToBook(t *testing.T) {
	db := setupTestDB(t)
	svc := &service{db: db, now: func() time.Time {
		return time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	}}

	in := validNewItem()
	in.Type = ""

	item, err := svc.AddItem(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, TypeBook, item.Type)
	assert.Equal(t, "B20240105001", item.SerialNo)
}

func TestAddItemValidation(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name   string
		mutate func(*NewItem)
	}{
		{"missing name", func(in *NewItem) { in.Name = "" }},
		{"missing author", func(in *NewItem) { in.AuthorName = "" }},
		{"missing category", func(in *NewItem) { in.Category = "" }},
		{"missing cost", func(in *NewItem) { in.Cost = "" }},
		{"missing procurement date", func(in *NewItem) { in.ProcurementDate = "" }},
		{"missing quantity", func(in *NewItem) { in.Quantity = "" }},
		{"non-numeric cost", func(in *NewItem) { in.Cost = "cheap" }},
		{"negative cost", func(in *NewItem) { in.Cost = "-5" }},
		{"non-numeric quantity", func(in *NewItem) { in.Quantity = "many" }},
		{"zero quantity", func(in *NewItem) { in.Quantity = "0" }},
		{"malformed date", func(in *NewItem) { in.ProcurementDate = "05.01.2024" }},
		{"unknown type", func(in *NewItem) { in.Type = "Magazine" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validNewItem()
			tt.mutate(&in)

			_, err := svc.AddItem(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, fault.Validation, fault.KindOf(err))
		})
	}
}

func TestAvailability(t *testing.T) {
	db := setupTestDB(t)
	svc := &service{db: db, now: time.Now}
	ctx := context.Background()

	first := validNewItem()
	_, err := svc.AddItem(ctx, first)
	require.NoError(t, err)

	second := validNewItem()
	second.Name = "Animal Farm"
	second.AuthorName = "George Orwell"
	_, err = svc.AddItem(ctx, second)
	require.NoError(t, err)

	// A second copy entry of the same title must not duplicate the lists.
	_, err = svc.AddItem(ctx, first)
	require.NoError(t, err)

	av, err := svc.Availability(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Animal Farm", "The Go Programming Language"}, av.Names)
	assert.Equal(t, []string{"Donovan and Kernighan", "George Orwell"}, av.Authors)
}

func TestGetItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.GetItem(context.Background(), "B19990101001")
	require.Error(t, err)
	assert.Equal(t, fault.NotFound, fault.KindOf(err))
}
