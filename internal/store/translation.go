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

// TranslationStore manages marketplace-specific translations.
type TranslationStore struct {
	db *sql.DB
}

// NewTranslationStore returns a new TranslationStore.
func NewTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db}
}

// Upsert writes translations in a single transaction, replacing the text of
// existing key/locale pairs.
func (s *TranslationStore) Upsert(ctx context.Context, translations []models.Translation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO marketplace_translations (marketplace_id, translation_key, locale, translation)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (marketplace_id, translation_key, locale)
		DO UPDATE SET translation = EXCLUDED.translation`)
	if err != nil {
		return fmt.Errorf("prepare upsert translation: %w", err)
	}
	defer stmt.Close()

	for _, t := range translations {
		if _, err := stmt.ExecContext(ctx, t.MarketplaceID, t.Key, t.Locale, t.Text); err != nil {
			return wrapWrite("upsert translation "+t.Key, err)
		}
	}

	return tx.Commit()
}

// List returns all translations of a marketplace.
func (s *TranslationStore) List(ctx context.Context, marketplaceID uuid.UUID) ([]models.Translation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT marketplace_id, translation_key, locale, translation
		FROM marketplace_translations
		WHERE marketplace_id = $1
		ORDER BY translation_key, locale`, marketplaceID)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var items []models.Translation
	for rows.Next() {
		var t models.Translation
		if err := rows.Scan(&t.MarketplaceID, &t.Key, &t.Locale, &t.Text); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
