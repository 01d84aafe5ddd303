// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"marketkit/internal/models"
)

// ProcessStore manages transaction processes.
type ProcessStore struct {
	db *sql.DB
}

// NewProcessStore returns a new ProcessStore.
func NewProcessStore(db *sql.DB) *ProcessStore {
	return &ProcessStore{db: db}
}

// Create inserts a transaction process and returns it.
func (s *ProcessStore) Create(ctx context.Context, p *models.TransactionProcess) (*models.TransactionProcess, error) {
	var out models.TransactionProcess
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO transaction_processes (marketplace_id, process, author_is_seller)
		VALUES ($1, $2, $3)
		RETURNING id, marketplace_id, process, author_is_seller, created_at`,
		p.MarketplaceID, p.Process, p.AuthorIsSeller,
	).Scan(&out.ID, &out.MarketplaceID, &out.Process, &out.AuthorIsSeller, &out.CreatedAt)
	if err != nil {
		return nil, wrapWrite("create transaction process", err)
	}
	return &out, nil
}

// List returns the processes of a marketplace, oldest first.
func (s *ProcessStore) List(ctx context.Context, marketplaceID uuid.UUID) ([]models.TransactionProcess, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, marketplace_id, process, author_is_seller, created_at
		FROM transaction_processes
		WHERE marketplace_id = $1
		ORDER BY created_at, id`, marketplaceID)
	if err != nil {
		return nil, fmt.Errorf("list transaction processes: %w", err)
	}
	defer rows.Close()

	var items []models.TransactionProcess
	for rows.Next() {
		var p models.TransactionProcess
		if err := rows.Scan(&p.ID, &p.MarketplaceID, &p.Process, &p.AuthorIsSeller, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction process: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
