// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a hierarchical listing category of a marketplace.
// Names live in per-locale translations; a category has no name of its own.
type Category struct {
	ID            uuid.UUID  `json:"id"`
	MarketplaceID uuid.UUID  `json:"marketplace_id"`
	ParentID      *uuid.UUID `json:"parent_id"`
	URL           string     `json:"url"`
	SortPriority  int        `json:"sort_priority"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Translations    []CategoryTranslation `json:"translations"`
	Children        []Category            `json:"children,omitempty"`
	ListingShapeIDs []uuid.UUID           `json:"listing_shape_ids"`
}

// CategoryTranslation is the name of a category in one locale.
type CategoryTranslation struct {
	Locale string `json:"locale"`
	Name   string `json:"name"`
}
