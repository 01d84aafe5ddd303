// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API: marketplace provisioning,
// listing shapes and the localized category tree.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"marketkit/internal/listingshape"
	"marketkit/internal/localetree"
	"marketkit/internal/marketplace"
	"marketkit/internal/models"
)

// MarketplaceService provisions and reads marketplaces.
type MarketplaceService interface {
	Create(ctx context.Context, p marketplace.CreateParams) (*marketplace.View, error)
	Get(ctx context.Context, id uuid.UUID) (*marketplace.View, error)
}

// ShapeService manages listing shapes.
type ShapeService interface {
	Get(ctx context.Context, marketplaceID, shapeID uuid.UUID) (*models.ListingShape, error)
	GetAll(ctx context.Context, marketplaceID uuid.UUID) ([]models.ListingShape, error)
	Create(ctx context.Context, marketplaceID uuid.UUID, in listingshape.NewShape) (*models.ListingShape, error)
	Update(ctx context.Context, marketplaceID, shapeID uuid.UUID, in listingshape.UpdateShape) (*models.ListingShape, error)
	Directions(ctx context.Context, marketplaceID uuid.UUID) (map[uuid.UUID]string, error)
}

// TreeService renders category trees.
type TreeService interface {
	Tree(ctx context.Context, marketplaceID uuid.UUID, locale string) ([]localetree.Node, error)
}

// API groups the JSON API handlers and their dependencies.
type API struct {
	marketplaces MarketplaceService
	shapes       ShapeService
	catalog      TreeService
	validate     *validator.Validate
}

// NewAPI creates a new API handler group.
func NewAPI(marketplaces MarketplaceService, shapes ShapeService, catalog TreeService) *API {
	return &API{
		marketplaces: marketplaces,
		shapes:       shapes,
		catalog:      catalog,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// pathID parses a UUID path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return id, nil
}

// marketplaceID parses the {id} path parameter and checks the marketplace
// exists. On failure the error response is already written.
func (a *API) marketplaceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return uuid.Nil, false
	}
	if _, err := a.marketplaces.Get(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}
