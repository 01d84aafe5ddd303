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

// CategoryStore manages categories, their translations and the listing
// shapes attached to them.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, marketplace_id, parent_id, url, sort_priority, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.MarketplaceID, &c.ParentID, &c.URL,
		&c.SortPriority, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Translations = []models.CategoryTranslation{}
	c.ListingShapeIDs = []uuid.UUID{}
	return &c, nil
}

// Create inserts a category together with its translations.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		INSERT INTO categories (marketplace_id, parent_id, url, sort_priority)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.MarketplaceID, c.ParentID, c.URL, c.SortPriority,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, wrapWrite("create category", err)
	}

	for _, t := range c.Translations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO category_translations (category_id, locale, name)
			VALUES ($1, $2, $3)`, created.ID, t.Locale, t.Name)
		if err != nil {
			return nil, wrapWrite("create category translation", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit category: %w", err)
	}
	created.Translations = append(created.Translations, c.Translations...)
	return created, nil
}

// AttachShape makes a listing shape available in a category. Attaching
// twice is a no-op.
func (s *CategoryStore) AttachShape(ctx context.Context, categoryID, shapeID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_listing_shapes (category_id, listing_shape_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, categoryID, shapeID)
	if err != nil {
		return wrapWrite("attach listing shape", err)
	}
	return nil
}

// List returns the marketplace's categories as a flat list ordered by
// sort_priority, with translations and listing shape ids filled in.
func (s *CategoryStore) List(ctx context.Context, marketplaceID uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE marketplace_id = $1
		ORDER BY sort_priority, created_at, id`, marketplaceID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		index[c.ID] = len(items)
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadTranslations(ctx, marketplaceID, items, index); err != nil {
		return nil, err
	}
	if err := s.loadShapeIDs(ctx, marketplaceID, items, index); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CategoryStore) loadTranslations(ctx context.Context, marketplaceID uuid.UUID, items []models.Category, index map[uuid.UUID]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ct.category_id, ct.locale, ct.name
		FROM category_translations ct
		JOIN categories c ON c.id = ct.category_id
		WHERE c.marketplace_id = $1
		ORDER BY ct.category_id, ct.locale`, marketplaceID)
	if err != nil {
		return fmt.Errorf("list category translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var t models.CategoryTranslation
		if err := rows.Scan(&id, &t.Locale, &t.Name); err != nil {
			return fmt.Errorf("scan category translation: %w", err)
		}
		if i, ok := index[id]; ok {
			items[i].Translations = append(items[i].Translations, t)
		}
	}
	return rows.Err()
}

func (s *CategoryStore) loadShapeIDs(ctx context.Context, marketplaceID uuid.UUID, items []models.Category, index map[uuid.UUID]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cls.category_id, cls.listing_shape_id
		FROM category_listing_shapes cls
		JOIN categories c ON c.id = cls.category_id
		WHERE c.marketplace_id = $1`, marketplaceID)
	if err != nil {
		return fmt.Errorf("list category shapes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID, shapeID uuid.UUID
		if err := rows.Scan(&categoryID, &shapeID); err != nil {
			return fmt.Errorf("scan category shape: %w", err)
		}
		if i, ok := index[categoryID]; ok {
			items[i].ListingShapeIDs = append(items[i].ListingShapeIDs, shapeID)
		}
	}
	return rows.Err()
}

// Tree returns the marketplace's categories as a nested tree structure.
func (s *CategoryStore) Tree(ctx context.Context, marketplaceID uuid.UUID) ([]models.Category, error) {
	flat, err := s.List(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}
	return buildTree(flat, nil), nil
}

// buildTree recursively builds a tree from a flat list. Categories whose
// parent is not in the list are dropped along with their subtree.
func buildTree(flat []models.Category, parentID *uuid.UUID) []models.Category {
	result := []models.Category{}
	for _, c := range flat {
		if ptrEqual(c.ParentID, parentID) {
			c.Children = buildTree(flat, &c.ID)
			result = append(result, c)
		}
	}
	return result
}

// ptrEqual compares two *uuid.UUID for equality (both nil or same value).
func ptrEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
