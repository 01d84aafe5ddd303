package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"marketkit/internal/localetree"
	"marketkit/internal/marketplace"
	"marketkit/internal/models"
)

type fakeMarketplaces map[uuid.UUID]*models.Marketplace

func (f fakeMarketplaces) FindByID(_ context.Context, id uuid.UUID) (*models.Marketplace, error) {
	return f[id], nil
}

type fakeTree []models.Category

func (f fakeTree) Tree(context.Context, uuid.UUID) ([]models.Category, error) { return f, nil }

type fakeShapes []models.ListingShape

func (f fakeShapes) List(context.Context, uuid.UUID) ([]models.ListingShape, error) { return f, nil }

// fakeTranslationStore counts List calls.
type fakeTranslationStore struct {
	items    []models.Translation
	lists    int
	upserted []models.Translation
	err      error
}

func (f *fakeTranslationStore) List(context.Context, uuid.UUID) ([]models.Translation, error) {
	f.lists++
	return f.items, f.err
}

func (f *fakeTranslationStore) Upsert(_ context.Context, items []models.Translation) error {
	f.upserted = append(f.upserted, items...)
	return f.err
}

// mapCache is an in-memory TranslationCache.
type mapCache struct {
	sets        map[uuid.UUID][]models.Translation
	invalidated []uuid.UUID
}

func newMapCache() *mapCache {
	return &mapCache{sets: make(map[uuid.UUID][]models.Translation)}
}

func (c *mapCache) Get(_ context.Context, id uuid.UUID) ([]models.Translation, bool) {
	items, ok := c.sets[id]
	return items, ok
}

func (c *mapCache) Set(_ context.Context, id uuid.UUID, items []models.Translation) {
	c.sets[id] = items
}

func (c *mapCache) Invalidate(_ context.Context, id uuid.UUID) {
	delete(c.sets, id)
	c.invalidated = append(c.invalidated, id)
}

func strPtr(s string) *string { return &s }

func TestTree(t *testing.T) {
	mID := uuid.New()
	sell := uuid.New()
	rent := uuid.New()
	root := uuid.New()
	child := uuid.New()

	marketplaces := fakeMarketplaces{mID: {
		ID:       mID,
		Settings: models.MarketplaceSettings{Locales: []string{"fi", "en"}},
	}}
	categories := fakeTree{{
		ID: root,
		Translations: []models.CategoryTranslation{
			{Locale: "en", Name: "Vehicles"},
			{Locale: "fi", Name: "Ajoneuvot"},
		},
		ListingShapeIDs: []uuid.UUID{rent},
		Children: []models.Category{{
			ID:              child,
			Translations:    []models.CategoryTranslation{{Locale: "en", Name: "Bikes"}},
			ListingShapeIDs: []uuid.UUID{rent, sell},
		}},
	}}
	shapes := fakeShapes{
		{ID: sell, NameTrKey: "shape.sell"},
		{ID: rent, NameTrKey: "shape.rent"},
	}
	translations := &fakeTranslationStore{items: []models.Translation{
		{MarketplaceID: mID, Key: "shape.sell", Locale: "fi", Text: "Myydään"},
		{MarketplaceID: mID, Key: "shape.sell", Locale: "en", Text: "Selling"},
		{MarketplaceID: mID, Key: "shape.rent", Locale: "en", Text: "Renting"},
	}}

	svc := NewService(marketplaces, categories, shapes, translations)

	tests := []struct {
		name   string
		locale string
		want   []localetree.Node
	}{
		{
			name:   "default locale is the first marketplace locale",
			locale: "",
			want: []localetree.Node{{
				ID:            root,
				Label:         "Ajoneuvot",
				ListingShapes: []localetree.ShapeNode{{ID: rent, Label: strPtr("Renting")}},
				Subcategories: []localetree.Node{{
					ID:    child,
					Label: "Bikes",
					ListingShapes: []localetree.ShapeNode{
						{ID: sell, Label: strPtr("Myydään")},
						{ID: rent, Label: strPtr("Renting")},
					},
					Subcategories: []localetree.Node{},
				}},
			}},
		},
		{
			name:   "explicit locale",
			locale: "en",
			want: []localetree.Node{{
				ID:            root,
				Label:         "Vehicles",
				ListingShapes: []localetree.ShapeNode{{ID: rent, Label: strPtr("Renting")}},
				Subcategories: []localetree.Node{{
					ID:    child,
					Label: "Bikes",
					ListingShapes: []localetree.ShapeNode{
						{ID: sell, Label: strPtr("Selling")},
						{ID: rent, Label: strPtr("Renting")},
					},
					Subcategories: []localetree.Node{},
				}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Tree(context.Background(), mID, tt.locale)
			if err != nil {
				t.Fatalf("Tree: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTreeUnknownMarketplace(t *testing.T) {
	svc := NewService(fakeMarketplaces{}, fakeTree{}, fakeShapes{}, &fakeTranslationStore{})
	_, err := svc.Tree(context.Background(), uuid.New(), "en")
	if !errors.Is(err, marketplace.ErrNotFound) {
		t.Fatalf("expected marketplace.ErrNotFound, got %v", err)
	}
}

func TestTreeCategoryWithoutTranslations(t *testing.T) {
	mID := uuid.New()
	svc := NewService(
		fakeMarketplaces{mID: {ID: mID, Settings: models.MarketplaceSettings{Locales: []string{"en"}}}},
		fakeTree{{ID: uuid.New()}},
		fakeShapes{},
		&fakeTranslationStore{},
	)
	_, err := svc.Tree(context.Background(), mID, "")
	if !errors.Is(err, localetree.ErrNoTranslation) {
		t.Fatalf("expected ErrNoTranslation, got %v", err)
	}
}

func TestResolver(t *testing.T) {
	resolve := Resolver([]models.Translation{
		{Key: "a", Locale: "en", Text: "A en"},
		{Key: "a", Locale: "fi", Text: "A fi"},
		{Key: "b", Locale: "sv", Text: "B sv"},
		{Key: "c", Locale: "de", Text: "C de"},
	}, []string{"fi", "sv"})

	tests := []struct {
		key, locale string
		want        string
		ok          bool
	}{
		{"a", "en", "A en", true},
		{"a", "de", "A fi", true},
		{"b", "en", "B sv", true},
		{"c", "en", "", false},
		{"c", "de", "C de", true},
		{"missing", "en", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"@"+tt.locale, func(t *testing.T) {
			got, ok := resolve(tt.key, tt.locale)
			if got != tt.want || ok != tt.ok {
				t.Errorf("resolve(%q, %q) = %q, %v; want %q, %v", tt.key, tt.locale, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTranslationsCacheThrough(t *testing.T) {
	mID := uuid.New()
	store := &fakeTranslationStore{items: []models.Translation{{MarketplaceID: mID, Key: "k", Locale: "en", Text: "v"}}}
	cache := newMapCache()
	tr := NewTranslations(store, cache)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, err := tr.List(ctx, mID)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("items: got %d, want 1", len(items))
		}
	}
	if store.lists != 1 {
		t.Errorf("store lists: got %d, want 1", store.lists)
	}

	other := uuid.New()
	err := tr.Upsert(ctx, []models.Translation{
		{MarketplaceID: mID, Key: "k", Locale: "fi", Text: "w"},
		{MarketplaceID: mID, Key: "j", Locale: "fi", Text: "x"},
		{MarketplaceID: other, Key: "k", Locale: "fi", Text: "y"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if diff := cmp.Diff([]uuid.UUID{mID, other}, cache.invalidated); diff != "" {
		t.Errorf("invalidated (-want +got):\n%s", diff)
	}

	if _, err := tr.List(ctx, mID); err != nil {
		t.Fatalf("List: %v", err)
	}
	if store.lists != 2 {
		t.Errorf("store lists after invalidation: got %d, want 2", store.lists)
	}
}

func TestTranslationsWithoutCache(t *testing.T) {
	store := &fakeTranslationStore{}
	tr := NewTranslations(store, nil)
	ctx := context.Background()

	if _, err := tr.List(ctx, uuid.New()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := tr.List(ctx, uuid.New()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if store.lists != 2 {
		t.Errorf("store lists: got %d, want 2", store.lists)
	}
	if err := tr.Upsert(ctx, []models.Translation{{Key: "k"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
}

func TestTranslationsStoreError(t *testing.T) {
	boom := errors.New("boom")
	cache := newMapCache()
	tr := NewTranslations(&fakeTranslationStore{err: boom}, cache)
	mID := uuid.New()

	if _, err := tr.List(context.Background(), mID); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, ok := cache.sets[mID]; ok {
		t.Error("failed loads must not be cached")
	}
}
