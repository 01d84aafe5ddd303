// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"marketkit/internal/models"
)

// MarketplaceStore manages marketplaces and the records created with them.
type MarketplaceStore struct {
	db *sql.DB
}

// NewMarketplaceStore returns a new MarketplaceStore.
func NewMarketplaceStore(db *sql.DB) *MarketplaceStore {
	return &MarketplaceStore{db: db}
}

const marketplaceColumns = `id, ident, consent, settings, available_currencies, country, created_at, updated_at`

// scanMarketplace scans a row into a Marketplace, decoding the settings JSON.
func scanMarketplace(scanner interface{ Scan(...any) error }) (*models.Marketplace, error) {
	var m models.Marketplace
	var settings []byte
	err := scanner.Scan(
		&m.ID, &m.Ident, &m.Consent, &settings,
		&m.AvailableCurrencies, &m.Country, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(settings, &m.Settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &m, nil
}

// Create inserts a new marketplace and returns it. A taken ident yields
// ErrDuplicate.
func (s *MarketplaceStore) Create(ctx context.Context, m *models.Marketplace) (*models.Marketplace, error) {
	settings, err := json.Marshal(m.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO marketplaces (ident, consent, settings, available_currencies, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+marketplaceColumns,
		m.Ident, m.Consent, settings, m.AvailableCurrencies, m.Country,
	)
	created, err := scanMarketplace(row)
	if err != nil {
		return nil, wrapWrite("create marketplace", err)
	}
	return created, nil
}

// FindByID retrieves a marketplace by ID. Returns nil if not found.
func (s *MarketplaceStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Marketplace, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+marketplaceColumns+` FROM marketplaces WHERE id = $1`, id)
	m, err := scanMarketplace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find marketplace by id: %w", err)
	}
	return m, nil
}

// IdentExists reports whether any marketplace already uses ident.
func (s *MarketplaceStore) IdentExists(ctx context.Context, ident string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM marketplaces WHERE ident = $1)`, ident,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check marketplace ident: %w", err)
	}
	return exists, nil
}

// CreateCustomization inserts the customization of a marketplace locale.
func (s *MarketplaceStore) CreateCustomization(ctx context.Context, c *models.Customization) (*models.Customization, error) {
	var out models.Customization
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO marketplace_customizations (marketplace_id, name, locale, how_to_use_page_content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, marketplace_id, name, locale, how_to_use_page_content, created_at`,
		c.MarketplaceID, c.Name, c.Locale, c.HowToUsePageContent,
	).Scan(&out.ID, &out.MarketplaceID, &out.Name, &out.Locale, &out.HowToUsePageContent, &out.CreatedAt)
	if err != nil {
		return nil, wrapWrite("create customization", err)
	}
	return &out, nil
}

// CreatePlan inserts the plan row of a marketplace.
func (s *MarketplaceStore) CreatePlan(ctx context.Context, p *models.Plan) (*models.Plan, error) {
	var out models.Plan
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO marketplace_plans (marketplace_id, plan_level, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, marketplace_id, plan_level, expires_at, created_at`,
		p.MarketplaceID, p.PlanLevel, p.ExpiresAt,
	).Scan(&out.ID, &out.MarketplaceID, &out.PlanLevel, &out.ExpiresAt, &out.CreatedAt)
	if err != nil {
		return nil, wrapWrite("create plan", err)
	}
	return &out, nil
}
