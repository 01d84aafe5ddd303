// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"marketkit/internal/database"
	"marketkit/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "marketkit")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "marketkit")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testMarketplace creates a throwaway marketplace. Deleting it cascades to
// every record that belongs to it.
func testMarketplace(t *testing.T, db *sql.DB) *models.Marketplace {
	t.Helper()

	ident := "test-" + uuid.NewString()[:8]
	m, err := NewMarketplaceStore(db).Create(context.Background(), &models.Marketplace{
		Ident:               ident,
		Consent:             "TEST",
		Settings:            models.MarketplaceSettings{Locales: []string{"en", "fi"}},
		AvailableCurrencies: "EUR",
	})
	if err != nil {
		t.Fatalf("create test marketplace: %v", err)
	}
	t.Cleanup(func() { cleanMarketplaces(t, db, ident) })
	return m
}

// testProcess creates a transaction process in the marketplace.
func testProcess(t *testing.T, db *sql.DB, marketplaceID uuid.UUID, authorIsSeller bool) *models.TransactionProcess {
	t.Helper()
	p, err := NewProcessStore(db).Create(context.Background(), &models.TransactionProcess{
		MarketplaceID:  marketplaceID,
		Process:        models.ProcessPreauthorize,
		AuthorIsSeller: authorIsSeller,
	})
	if err != nil {
		t.Fatalf("create test process: %v", err)
	}
	return p
}

// cleanMarketplaces removes test marketplaces by ident. Call in t.Cleanup().
func cleanMarketplaces(t *testing.T, db *sql.DB, idents ...string) {
	t.Helper()
	for _, ident := range idents {
		db.Exec("DELETE FROM marketplaces WHERE ident = $1", ident)
	}
}
