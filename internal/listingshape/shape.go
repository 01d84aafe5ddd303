// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listingshape manages the listing shapes of a marketplace: input
// validation, unique shape names, unit handling and listing directions.
package listingshape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"marketkit/internal/ident"
	"marketkit/internal/models"
)

// ErrInvalidShape wraps validation failures of shape input.
var ErrInvalidShape = errors.New("invalid listing shape")

// Repository persists listing shapes. Create and Update must write the shape
// row and its units atomically.
type Repository interface {
	Get(ctx context.Context, marketplaceID, shapeID uuid.UUID) (*models.ListingShape, error)
	List(ctx context.Context, marketplaceID uuid.UUID) ([]models.ListingShape, error)
	NameExists(ctx context.Context, marketplaceID uuid.UUID, name string) (bool, error)
	Create(ctx context.Context, shape *models.ListingShape) (*models.ListingShape, error)
	Update(ctx context.Context, shape *models.ListingShape, replaceUnits bool) error
}

// ProcessLister lists the transaction processes of a marketplace.
type ProcessLister interface {
	List(ctx context.Context, marketplaceID uuid.UUID) ([]models.TransactionProcess, error)
}

// Unit is a pricing unit in shape input.
type Unit struct {
	Type           models.UnitType `json:"type" validate:"required,oneof=piece hour day night week month custom"`
	TranslationKey *string         `json:"translation_key" validate:"required_if=Type custom"`
}

// NewShape is the input of Create.
type NewShape struct {
	PriceEnabled             *bool     `json:"price_enabled" validate:"required"`
	NameTrKey                string    `json:"name_tr_key" validate:"required"`
	ActionButtonTrKey        string    `json:"action_button_tr_key" validate:"required"`
	TransactionProcessID     uuid.UUID `json:"transaction_process_id" validate:"required"`
	ShippingEnabled          *bool     `json:"shipping_enabled" validate:"required"`
	Units                    []Unit    `json:"units" validate:"dive"`
	PriceQuantityPlaceholder *string   `json:"price_quantity_placeholder" validate:"omitempty,oneof=mass time long_time"`
	SortPriority             int       `json:"sort_priority"`
	Basename                 string    `json:"basename" validate:"required"`
}

// UpdateShape is the input of Update. Nil fields are left untouched; a nil
// Units slice keeps the current units, a non-nil one replaces them.
type UpdateShape struct {
	PriceEnabled         *bool      `json:"price_enabled"`
	NameTrKey            *string    `json:"name_tr_key" validate:"omitnil,min=1"`
	ActionButtonTrKey    *string    `json:"action_button_tr_key" validate:"omitnil,min=1"`
	TransactionProcessID *uuid.UUID `json:"transaction_process_id"`
	Units                []Unit     `json:"units" validate:"omitempty,dive"`
	ShippingEnabled      *bool      `json:"shipping_enabled"`
	SortPriority         *int       `json:"sort_priority"`
}

// Service implements listing shape operations.
type Service struct {
	repo      Repository
	processes ProcessLister
	names     *ident.Allocator
	validate  *validator.Validate
}

// NewService returns a Service. maxAttempts bounds shape name allocation;
// zero uses ident.DefaultMaxAttempts.
func NewService(repo Repository, processes ProcessLister, maxAttempts int) *Service {
	return &Service{
		repo:      repo,
		processes: processes,
		names:     NameAllocator(maxAttempts),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// NameAllocator returns the allocator for shape names: "new" and "all" are
// reserved (they clash with admin routes) and names are not length capped.
func NameAllocator(maxAttempts int) *ident.Allocator {
	return &ident.Allocator{
		Reserved:    ident.NewReserved("new", "all"),
		MaxAttempts: maxAttempts,
	}
}

// Get returns a shape of the marketplace, or nil if there is none.
func (s *Service) Get(ctx context.Context, marketplaceID, shapeID uuid.UUID) (*models.ListingShape, error) {
	return s.repo.Get(ctx, marketplaceID, shapeID)
}

// GetAll returns the marketplace's shapes ordered by sort priority.
func (s *Service) GetAll(ctx context.Context, marketplaceID uuid.UUID) ([]models.ListingShape, error) {
	return s.repo.List(ctx, marketplaceID)
}

// Create validates the input, derives a unique name from its basename and
// stores the shape together with its units.
func (s *Service) Create(ctx context.Context, marketplaceID uuid.UUID, in NewShape) (*models.ListingShape, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if err := s.checkProcess(ctx, marketplaceID, in.TransactionProcessID); err != nil {
		return nil, err
	}

	name, err := s.names.Allocate(ctx, in.Basename, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.NameExists(ctx, marketplaceID, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("allocate shape name: %w", err)
	}

	shape := &models.ListingShape{
		MarketplaceID:            marketplaceID,
		Name:                     name,
		PriceEnabled:             *in.PriceEnabled,
		NameTrKey:                in.NameTrKey,
		ActionButtonTrKey:        in.ActionButtonTrKey,
		TransactionProcessID:     in.TransactionProcessID,
		ShippingEnabled:          *in.ShippingEnabled,
		SortPriority:             in.SortPriority,
		PriceQuantityPlaceholder: in.PriceQuantityPlaceholder,
		Units:                    toModelUnits(in.Units),
	}

	created, err := s.repo.Create(ctx, shape)
	if err != nil {
		return nil, fmt.Errorf("create listing shape: %w", err)
	}

	slog.Info("listing shape created",
		"marketplace_id", marketplaceID,
		"shape_id", created.ID,
		"name", created.Name,
	)
	return created, nil
}

// Update applies the non-nil fields of in to an existing shape and returns
// the shape as stored. It returns nil, nil when the shape does not exist.
func (s *Service) Update(ctx context.Context, marketplaceID, shapeID uuid.UUID, in UpdateShape) (*models.ListingShape, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	shape, err := s.repo.Get(ctx, marketplaceID, shapeID)
	if err != nil {
		return nil, err
	}
	if shape == nil {
		return nil, nil
	}

	if in.PriceEnabled != nil {
		shape.PriceEnabled = *in.PriceEnabled
	}
	if in.NameTrKey != nil {
		shape.NameTrKey = *in.NameTrKey
	}
	if in.ActionButtonTrKey != nil {
		shape.ActionButtonTrKey = *in.ActionButtonTrKey
	}
	if in.TransactionProcessID != nil {
		if err := s.checkProcess(ctx, marketplaceID, *in.TransactionProcessID); err != nil {
			return nil, err
		}
		shape.TransactionProcessID = *in.TransactionProcessID
	}
	if in.ShippingEnabled != nil {
		shape.ShippingEnabled = *in.ShippingEnabled
	}
	if in.SortPriority != nil {
		shape.SortPriority = *in.SortPriority
	}
	replaceUnits := in.Units != nil
	if replaceUnits {
		shape.Units = toModelUnits(in.Units)
	}

	if err := s.repo.Update(ctx, shape, replaceUnits); err != nil {
		return nil, fmt.Errorf("update listing shape: %w", err)
	}
	return s.repo.Get(ctx, marketplaceID, shapeID)
}

// checkProcess returns ErrInvalidShape unless processID is one of the
// marketplace's transaction processes.
func (s *Service) checkProcess(ctx context.Context, marketplaceID, processID uuid.UUID) error {
	processes, err := s.processes.List(ctx, marketplaceID)
	if err != nil {
		return fmt.Errorf("list transaction processes: %w", err)
	}
	if !slices.ContainsFunc(processes, func(p models.TransactionProcess) bool { return p.ID == processID }) {
		return fmt.Errorf("%w: transaction process %s does not belong to the marketplace", ErrInvalidShape, processID)
	}
	return nil
}

// Directions maps every shape of the marketplace to its listing direction.
func (s *Service) Directions(ctx context.Context, marketplaceID uuid.UUID) (map[uuid.UUID]string, error) {
	shapes, err := s.repo.List(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}
	processes, err := s.processes.List(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}
	return DirectionMap(shapes, processes), nil
}

func toModelUnits(units []Unit) []models.ListingUnit {
	out := make([]models.ListingUnit, 0, len(units))
	for _, u := range units {
		out = append(out, models.ListingUnit{Type: u.Type, TranslationKey: u.TranslationKey})
	}
	return out
}
