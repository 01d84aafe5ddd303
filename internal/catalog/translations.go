package catalog

import (
	"context"

	"github.com/google/uuid"

	"marketkit/internal/localetree"
	"marketkit/internal/models"
)

// TranslationStore reads and writes marketplace translations.
type TranslationStore interface {
	List(ctx context.Context, marketplaceID uuid.UUID) ([]models.Translation, error)
	Upsert(ctx context.Context, translations []models.Translation) error
}

// TranslationCache holds translation sets per marketplace.
// cache.TranslationCache implements it.
type TranslationCache interface {
	Get(ctx context.Context, marketplaceID uuid.UUID) ([]models.Translation, bool)
	Set(ctx context.Context, marketplaceID uuid.UUID, items []models.Translation)
	Invalidate(ctx context.Context, marketplaceID uuid.UUID)
}

// Translations reads marketplace translations through a cache and drops
// cached sets when they are written. A nil cache disables caching.
type Translations struct {
	store TranslationStore
	cache TranslationCache
}

// NewTranslations returns a cache-through translation source.
func NewTranslations(store TranslationStore, cache TranslationCache) *Translations {
	return &Translations{store: store, cache: cache}
}

// List returns all translations of a marketplace.
func (t *Translations) List(ctx context.Context, marketplaceID uuid.UUID) ([]models.Translation, error) {
	if t.cache != nil {
		if items, ok := t.cache.Get(ctx, marketplaceID); ok {
			return items, nil
		}
	}

	items, err := t.store.List(ctx, marketplaceID)
	if err != nil {
		return nil, err
	}
	if t.cache != nil {
		t.cache.Set(ctx, marketplaceID, items)
	}
	return items, nil
}

// Upsert writes translations and invalidates the cached set of every
// marketplace touched.
func (t *Translations) Upsert(ctx context.Context, translations []models.Translation) error {
	if err := t.store.Upsert(ctx, translations); err != nil {
		return err
	}
	if t.cache == nil {
		return nil
	}
	seen := make(map[uuid.UUID]bool)
	for _, tr := range translations {
		if !seen[tr.MarketplaceID] {
			seen[tr.MarketplaceID] = true
			t.cache.Invalidate(ctx, tr.MarketplaceID)
		}
	}
	return nil
}

// Resolver returns a text lookup over translations. A key is looked up in
// the requested locale first, then in each of fallbacks in order.
func Resolver(translations []models.Translation, fallbacks []string) localetree.TextResolver {
	byKey := make(map[string]map[string]string)
	for _, tr := range translations {
		locales, ok := byKey[tr.Key]
		if !ok {
			locales = make(map[string]string)
			byKey[tr.Key] = locales
		}
		locales[tr.Locale] = tr.Text
	}

	return func(key, locale string) (string, bool) {
		locales, ok := byKey[key]
		if !ok {
			return "", false
		}
		if text, ok := locales[locale]; ok {
			return text, true
		}
		for _, l := range fallbacks {
			if text, ok := locales[l]; ok {
				return text, true
			}
		}
		return "", false
	}
}
