package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"marketkit/internal/models"
)

func TestMarketplaceStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewMarketplaceStore(db)
	ctx := context.Background()

	country := "FI"
	ident := "test-create-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanMarketplaces(t, db, ident) })

	created, err := s.Create(ctx, &models.Marketplace{
		Ident:               ident,
		Consent:             "SHARETRIBE1.0",
		Settings:            models.MarketplaceSettings{Locales: []string{"fi"}},
		AvailableCurrencies: "EUR",
		Country:             &country,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected marketplace, got nil")
	}
	if found.Ident != ident {
		t.Errorf("ident: got %q, want %q", found.Ident, ident)
	}
	if len(found.Settings.Locales) != 1 || found.Settings.Locales[0] != "fi" {
		t.Errorf("locales: got %v, want [fi]", found.Settings.Locales)
	}
	if found.Country == nil || *found.Country != "FI" {
		t.Errorf("country: got %v, want FI", found.Country)
	}
}

func TestMarketplaceStoreFindByIDNotFound(t *testing.T) {
	db := testDB(t)
	found, err := NewMarketplaceStore(db).FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil, got %+v", found)
	}
}

func TestMarketplaceStoreIdentExists(t *testing.T) {
	db := testDB(t)
	s := NewMarketplaceStore(db)
	m := testMarketplace(t, db)
	ctx := context.Background()

	exists, err := s.IdentExists(ctx, m.Ident)
	if err != nil {
		t.Fatalf("IdentExists: %v", err)
	}
	if !exists {
		t.Errorf("expected %q to exist", m.Ident)
	}

	exists, err = s.IdentExists(ctx, m.Ident+"-nope")
	if err != nil {
		t.Fatalf("IdentExists: %v", err)
	}
	if exists {
		t.Error("expected unknown ident to be free")
	}
}

func TestMarketplaceStoreDuplicateIdent(t *testing.T) {
	db := testDB(t)
	m := testMarketplace(t, db)

	_, err := NewMarketplaceStore(db).Create(context.Background(), &models.Marketplace{
		Ident:   m.Ident,
		Consent: "TEST",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMarketplaceStoreCustomizationAndPlan(t *testing.T) {
	db := testDB(t)
	s := NewMarketplaceStore(db)
	m := testMarketplace(t, db)
	ctx := context.Background()

	c, err := s.CreateCustomization(ctx, &models.Customization{
		MarketplaceID:       m.ID,
		Name:                "Test Market",
		Locale:              "en",
		HowToUsePageContent: "<h1>Hi</h1>",
	})
	if err != nil {
		t.Fatalf("CreateCustomization: %v", err)
	}
	if c.Name != "Test Market" || c.Locale != "en" {
		t.Errorf("customization: got %+v", c)
	}

	expires := time.Now().Add(31 * 24 * time.Hour).UTC().Truncate(time.Second)
	p, err := s.CreatePlan(ctx, &models.Plan{MarketplaceID: m.ID, PlanLevel: models.PlanLevelFree, ExpiresAt: expires})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if !p.ExpiresAt.Equal(expires) {
		t.Errorf("expires_at: got %v, want %v", p.ExpiresAt, expires)
	}
}
