// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// UnitType is the pricing unit of a listing shape.
type UnitType string

const (
	UnitPiece  UnitType = "piece"
	UnitHour   UnitType = "hour"
	UnitDay    UnitType = "day"
	UnitNight  UnitType = "night"
	UnitWeek   UnitType = "week"
	UnitMonth  UnitType = "month"
	UnitCustom UnitType = "custom"
)

// ListingShape is a transaction template offered to marketplace users:
// name, pricing units and the transaction process that listings follow.
type ListingShape struct {
	ID                       uuid.UUID     `json:"id"`
	MarketplaceID            uuid.UUID     `json:"marketplace_id"`
	Name                     string        `json:"name"`
	PriceEnabled             bool          `json:"price_enabled"`
	NameTrKey                string        `json:"name_tr_key"`
	ActionButtonTrKey        string        `json:"action_button_tr_key"`
	TransactionProcessID     uuid.UUID     `json:"transaction_process_id"`
	ShippingEnabled          bool          `json:"shipping_enabled"`
	SortPriority             int           `json:"sort_priority"`
	PriceQuantityPlaceholder *string       `json:"price_quantity_placeholder"`
	Units                    []ListingUnit `json:"units"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

// ListingUnit is one pricing unit of a shape. TranslationKey names the
// unit text and is set only for custom units.
type ListingUnit struct {
	Type           UnitType `json:"type"`
	TranslationKey *string  `json:"translation_key,omitempty"`
}

// Transaction process kinds.
const (
	ProcessPreauthorize = "preauthorize"
	ProcessNone         = "none"
)

// TransactionProcess describes how transactions of a shape are run.
type TransactionProcess struct {
	ID             uuid.UUID `json:"id"`
	MarketplaceID  uuid.UUID `json:"marketplace_id"`
	Process        string    `json:"process"`
	AuthorIsSeller bool      `json:"author_is_seller"`
	CreatedAt      time.Time `json:"created_at"`
}

// Valid reports whether u is one of the known unit types.
func (u UnitType) Valid() bool {
	switch u {
	case UnitPiece, UnitHour, UnitDay, UnitNight, UnitWeek, UnitMonth, UnitCustom:
		return true
	}
	return false
}
