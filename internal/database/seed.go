package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Provisioner creates a demo marketplace. It is satisfied by an adapter over
// marketplace.Service so this package does not depend on the domain layer.
type Provisioner interface {
	ProvisionDemo(ctx context.Context) (ident string, err error)
}

// Seed populates an empty database with a demo marketplace for development.
// It is a no-op when any marketplace exists already.
func Seed(ctx context.Context, db *sql.DB, p Provisioner) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM marketplaces").Scan(&count); err != nil {
		return fmt.Errorf("seed check marketplaces: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	ident, err := p.ProvisionDemo(ctx)
	if err != nil {
		return fmt.Errorf("seed provision demo: %w", err)
	}

	slog.Info("database seeded with demo marketplace", "ident", ident)
	return nil
}
