package main

import (
	"database/sql"
	"fmt"

	"marketkit/internal/catalog"
	"marketkit/internal/config"
	"marketkit/internal/database"
	"marketkit/internal/i18n"
	"marketkit/internal/listingshape"
	"marketkit/internal/marketplace"
	"marketkit/internal/store"
)

// services holds the domain services built on one database pool.
type services struct {
	marketplaces *marketplace.Service
	shapes       *listingshape.Service
	catalog      *catalog.Service
}

// newServices wires stores into the domain services. trCache may be nil,
// which disables translation caching.
func newServices(db *sql.DB, cfg *config.Config, trCache catalog.TranslationCache) (*services, error) {
	messages, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	marketplaceStore := store.NewMarketplaceStore(db)
	categoryStore := store.NewCategoryStore(db)
	processStore := store.NewProcessStore(db)
	shapeStore := store.NewShapeStore(db)
	translations := catalog.NewTranslations(store.NewTranslationStore(db), trCache)

	shapes := listingshape.NewService(shapeStore, processStore, cfg.IdentMaxAttempts)

	marketplaces := marketplace.NewService(
		marketplaceStore, categoryStore, processStore, shapes, translations, messages,
		marketplace.Config{
			Scheme:      cfg.MarketplaceScheme,
			Domain:      cfg.MarketplaceDomain,
			MaxAttempts: cfg.IdentMaxAttempts,
		},
	)

	return &services{
		marketplaces: marketplaces,
		shapes:       shapes,
		catalog:      catalog.NewService(marketplaceStore, categoryStore, shapeStore, translations),
	}, nil
}

// connectDB opens the database and applies pending migrations.
func connectDB(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
