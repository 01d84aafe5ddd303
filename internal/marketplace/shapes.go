package marketplace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"marketkit/internal/listingshape"
	"marketkit/internal/models"
)

// shapeTemplate describes the listing shape a new marketplace starts with.
type shapeTemplate struct {
	// Basename of the shape name and message id segment.
	Basename string
	Units    []models.UnitType
}

var shapeTemplates = map[string]shapeTemplate{
	"Sell":    {Basename: "sell"},
	"Rent":    {Basename: "rent", Units: []models.UnitType{models.UnitDay, models.UnitWeek, models.UnitMonth}},
	"Service": {Basename: "service", Units: []models.UnitType{models.UnitHour}},
}

// TemplateFor returns the listing shape template name for a marketplace
// type. Unknown types and "product" get "Sell".
func TemplateFor(marketplaceType string) string {
	switch marketplaceType {
	case TypeRental:
		return "Rent"
	case TypeService:
		return "Service"
	default:
		return "Sell"
	}
}

// createDefaultShape creates the author-is-seller preauthorize process and a
// listing shape using it. The shape texts are stored as marketplace
// translations under fresh keys.
func (s *Service) createDefaultShape(ctx context.Context, marketplaceID uuid.UUID, locale, kind string) (*models.ListingShape, error) {
	tmpl := shapeTemplates[TemplateFor(kind)]

	process, err := s.processes.Create(ctx, &models.TransactionProcess{
		MarketplaceID:  marketplaceID,
		Process:        models.ProcessPreauthorize,
		AuthorIsSeller: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create transaction process: %w", err)
	}

	nameKey := newTrKey()
	actionKey := newTrKey()
	msgPrefix := "listing_shapes." + tmpl.Basename
	err = s.translations.Upsert(ctx, []models.Translation{
		{MarketplaceID: marketplaceID, Key: nameKey, Locale: locale, Text: s.messages.T(locale, msgPrefix+".name", nil)},
		{MarketplaceID: marketplaceID, Key: actionKey, Locale: locale, Text: s.messages.T(locale, msgPrefix+".action_button", nil)},
	})
	if err != nil {
		return nil, fmt.Errorf("store listing shape texts: %w", err)
	}

	units := make([]listingshape.Unit, 0, len(tmpl.Units))
	for _, u := range tmpl.Units {
		units = append(units, listingshape.Unit{Type: u})
	}

	priceEnabled := true
	shipping := kind == TypeProduct
	shape, err := s.shapes.Create(ctx, marketplaceID, listingshape.NewShape{
		PriceEnabled:         &priceEnabled,
		NameTrKey:            nameKey,
		ActionButtonTrKey:    actionKey,
		TransactionProcessID: process.ID,
		ShippingEnabled:      &shipping,
		Units:                units,
		Basename:             tmpl.Basename,
	})
	if err != nil {
		return nil, fmt.Errorf("create default listing shape: %w", err)
	}
	return shape, nil
}

func newTrKey() string {
	return "marketplace.listing_shape." + uuid.NewString()
}
