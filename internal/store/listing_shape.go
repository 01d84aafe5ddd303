// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"marketkit/internal/models"
)

// ShapeStore manages listing shapes and their units.
type ShapeStore struct {
	db *sql.DB
}

// NewShapeStore returns a new ShapeStore.
func NewShapeStore(db *sql.DB) *ShapeStore {
	return &ShapeStore{db: db}
}

const shapeColumns = `id, marketplace_id, name, price_enabled, name_tr_key, action_button_tr_key,
	transaction_process_id, shipping_enabled, sort_priority, price_quantity_placeholder,
	created_at, updated_at`

// scanShape scans a row into a ListingShape. Units are loaded separately.
func scanShape(scanner interface{ Scan(...any) error }) (*models.ListingShape, error) {
	var s models.ListingShape
	err := scanner.Scan(
		&s.ID, &s.MarketplaceID, &s.Name, &s.PriceEnabled, &s.NameTrKey, &s.ActionButtonTrKey,
		&s.TransactionProcessID, &s.ShippingEnabled, &s.SortPriority, &s.PriceQuantityPlaceholder,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Units = []models.ListingUnit{}
	return &s, nil
}

// Get returns a shape of the marketplace with its units, or nil.
func (s *ShapeStore) Get(ctx context.Context, marketplaceID, shapeID uuid.UUID) (*models.ListingShape, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shapeColumns+` FROM listing_shapes WHERE id = $1 AND marketplace_id = $2`,
		shapeID, marketplaceID)
	shape, err := scanShape(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find listing shape: %w", err)
	}

	units, err := s.units(ctx, `
		SELECT listing_shape_id, unit_type, translation_key
		FROM listing_units WHERE listing_shape_id = $1
		ORDER BY position`, shapeID)
	if err != nil {
		return nil, err
	}
	if u, ok := units[shape.ID]; ok {
		shape.Units = u
	}
	return shape, nil
}

// List returns the shapes of a marketplace ordered by sort_priority.
func (s *ShapeStore) List(ctx context.Context, marketplaceID uuid.UUID) ([]models.ListingShape, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shapeColumns+` FROM listing_shapes
		WHERE marketplace_id = $1
		ORDER BY sort_priority, created_at, id`, marketplaceID)
	if err != nil {
		return nil, fmt.Errorf("list listing shapes: %w", err)
	}
	defer rows.Close()

	var items []models.ListingShape
	for rows.Next() {
		shape, err := scanShape(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing shape: %w", err)
		}
		items = append(items, *shape)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	units, err := s.units(ctx, `
		SELECT u.listing_shape_id, u.unit_type, u.translation_key
		FROM listing_units u
		JOIN listing_shapes ls ON ls.id = u.listing_shape_id
		WHERE ls.marketplace_id = $1
		ORDER BY u.listing_shape_id, u.position`, marketplaceID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if u, ok := units[items[i].ID]; ok {
			items[i].Units = u
		}
	}
	return items, nil
}

// units runs a unit query and groups the result by shape id.
func (s *ShapeStore) units(ctx context.Context, query string, args ...any) (map[uuid.UUID][]models.ListingUnit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listing units: %w", err)
	}
	defer rows.Close()

	byShape := make(map[uuid.UUID][]models.ListingUnit)
	for rows.Next() {
		var shapeID uuid.UUID
		var u models.ListingUnit
		if err := rows.Scan(&shapeID, &u.Type, &u.TranslationKey); err != nil {
			return nil, fmt.Errorf("scan listing unit: %w", err)
		}
		byShape[shapeID] = append(byShape[shapeID], u)
	}
	return byShape, rows.Err()
}

// NameExists reports whether the marketplace has a shape called name.
func (s *ShapeStore) NameExists(ctx context.Context, marketplaceID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM listing_shapes WHERE marketplace_id = $1 AND name = $2)`,
		marketplaceID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check listing shape name: %w", err)
	}
	return exists, nil
}

// Create inserts a shape and its units in one transaction.
func (s *ShapeStore) Create(ctx context.Context, shape *models.ListingShape) (*models.ListingShape, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		INSERT INTO listing_shapes (marketplace_id, name, price_enabled, name_tr_key, action_button_tr_key,
			transaction_process_id, shipping_enabled, sort_priority, price_quantity_placeholder)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+shapeColumns,
		shape.MarketplaceID, shape.Name, shape.PriceEnabled, shape.NameTrKey, shape.ActionButtonTrKey,
		shape.TransactionProcessID, shape.ShippingEnabled, shape.SortPriority, shape.PriceQuantityPlaceholder,
	)
	created, err := scanShape(row)
	if err != nil {
		return nil, wrapWrite("create listing shape", err)
	}

	if err := insertUnits(ctx, tx, created.ID, shape.Units); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit listing shape: %w", err)
	}

	created.Units = append(created.Units, shape.Units...)
	return created, nil
}

// Update writes the shape row and, when replaceUnits is set, swaps its
// units for shape.Units. Both happen in one transaction.
func (s *ShapeStore) Update(ctx context.Context, shape *models.ListingShape, replaceUnits bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE listing_shapes SET
			price_enabled = $1, name_tr_key = $2, action_button_tr_key = $3,
			transaction_process_id = $4, shipping_enabled = $5, sort_priority = $6,
			updated_at = NOW()
		WHERE id = $7 AND marketplace_id = $8`,
		shape.PriceEnabled, shape.NameTrKey, shape.ActionButtonTrKey,
		shape.TransactionProcessID, shape.ShippingEnabled, shape.SortPriority,
		shape.ID, shape.MarketplaceID,
	)
	if err != nil {
		return wrapWrite("update listing shape", err)
	}

	if replaceUnits {
		if _, err := tx.ExecContext(ctx, `DELETE FROM listing_units WHERE listing_shape_id = $1`, shape.ID); err != nil {
			return fmt.Errorf("delete listing units: %w", err)
		}
		if err := insertUnits(ctx, tx, shape.ID, shape.Units); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertUnits(ctx context.Context, tx *sql.Tx, shapeID uuid.UUID, units []models.ListingUnit) error {
	if len(units) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listing_units (listing_shape_id, position, unit_type, translation_key)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("prepare listing units: %w", err)
	}
	defer stmt.Close()

	for i, u := range units {
		if _, err := stmt.ExecContext(ctx, shapeID, i, string(u.Type), u.TranslationKey); err != nil {
			return wrapWrite("insert listing unit", err)
		}
	}
	return nil
}
