// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Marketplace is a tenant of the platform, addressed by its unique ident
// (the sub-domain part of its URL).
type Marketplace struct {
	ID                  uuid.UUID           `json:"id"`
	Ident               string              `json:"ident"`
	Consent             string              `json:"consent"`
	Settings            MarketplaceSettings `json:"settings"`
	AvailableCurrencies string              `json:"available_currencies"`
	Country             *string             `json:"country"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// FullDomain returns the marketplace URL: "{scheme}://{ident}.{domain}".
// An empty scheme yields just the host name.
func (m *Marketplace) FullDomain(scheme, domain string) string {
	host := m.Ident + "." + domain
	if scheme == "" {
		return host
	}
	return scheme + "://" + host
}

// MarketplaceSettings is the free-form settings document of a marketplace.
// Stored as JSONB.
type MarketplaceSettings struct {
	Locales []string `json:"locales"`
}

// Customization holds per-locale presentation data of a marketplace.
type Customization struct {
	ID                  uuid.UUID `json:"id"`
	MarketplaceID       uuid.UUID `json:"marketplace_id"`
	Name                string    `json:"name"`
	Locale              string    `json:"locale"`
	HowToUsePageContent string    `json:"how_to_use_page_content"`
	CreatedAt           time.Time `json:"created_at"`
}

// Plan levels.
const (
	PlanLevelFree = 0
)

// Plan is the subscription plan row created with a marketplace.
type Plan struct {
	ID            uuid.UUID `json:"id"`
	MarketplaceID uuid.UUID `json:"marketplace_id"`
	PlanLevel     int       `json:"plan_level"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// Translation is a marketplace-specific text for a translation key in one
// locale. Listing shape names and button labels are stored this way.
type Translation struct {
	MarketplaceID uuid.UUID `json:"marketplace_id"`
	Key           string    `json:"translation_key"`
	Locale        string    `json:"locale"`
	Text          string    `json:"translation"`
}
