// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog renders the localized category tree of a marketplace.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"marketkit/internal/localetree"
	"marketkit/internal/marketplace"
	"marketkit/internal/models"
)

// MarketplaceFinder loads marketplaces. Returns nil when not found.
type MarketplaceFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Marketplace, error)
}

// CategoryTree loads the category tree of a marketplace.
type CategoryTree interface {
	Tree(ctx context.Context, marketplaceID uuid.UUID) ([]models.Category, error)
}

// ShapeLister lists the listing shapes of a marketplace.
type ShapeLister interface {
	List(ctx context.Context, marketplaceID uuid.UUID) ([]models.ListingShape, error)
}

// TranslationLister lists the translations of a marketplace.
type TranslationLister interface {
	List(ctx context.Context, marketplaceID uuid.UUID) ([]models.Translation, error)
}

// Service renders category trees.
type Service struct {
	marketplaces MarketplaceFinder
	categories   CategoryTree
	shapes       ShapeLister
	translations TranslationLister
}

// NewService returns a catalog Service.
func NewService(marketplaces MarketplaceFinder, categories CategoryTree, shapes ShapeLister, translations TranslationLister) *Service {
	return &Service{
		marketplaces: marketplaces,
		categories:   categories,
		shapes:       shapes,
		translations: translations,
	}
}

// Tree returns the category tree of a marketplace labelled for locale. An
// empty locale means the marketplace's first locale. Returns
// marketplace.ErrNotFound for unknown marketplaces.
func (s *Service) Tree(ctx context.Context, marketplaceID uuid.UUID, locale string) ([]localetree.Node, error) {
	m, err := s.marketplaces.FindByID(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, marketplace.ErrNotFound
	}

	locales := m.Settings.Locales
	if locale == "" && len(locales) > 0 {
		locale = locales[0]
	}

	categories, err := s.categories.Tree(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}
	shapes, err := s.shapes.List(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}
	translations, err := s.translations.List(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}

	tree, err := localetree.BuildTree(categories, shapes, locale, locales, Resolver(translations, locales))
	if err != nil {
		return nil, fmt.Errorf("build category tree: %w", err)
	}
	return tree, nil
}
