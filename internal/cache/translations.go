// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// translations.go caches the translation table of a marketplace in Valkey.
// Rendering a category tree needs every translation of the marketplace, so
// the whole set is stored under one key per marketplace.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"marketkit/internal/models"
)

const (
	// translationKeyPrefix is the Valkey key prefix for cached translations.
	translationKeyPrefix = "translations:"

	// DefaultTranslationTTL is how long a translation set stays cached.
	DefaultTranslationTTL = 10 * time.Minute
)

// TranslationCache stores marketplace translations in Valkey. Cache errors
// are logged and reported as misses.
type TranslationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTranslationCache creates a translation cache backed by the given
// Valkey client. A zero ttl uses DefaultTranslationTTL.
func NewTranslationCache(client *redis.Client, ttl time.Duration) *TranslationCache {
	if ttl == 0 {
		ttl = DefaultTranslationTTL
	}
	return &TranslationCache{client: client, ttl: ttl}
}

// TranslationKey returns the cache key of a marketplace's translations.
func TranslationKey(marketplaceID uuid.UUID) string {
	return translationKeyPrefix + marketplaceID.String()
}

// Get returns the cached translations of a marketplace.
func (c *TranslationCache) Get(ctx context.Context, marketplaceID uuid.UUID) ([]models.Translation, bool) {
	key := TranslationKey(marketplaceID)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("translation cache get error", "key", key, "error", err)
		return nil, false
	}

	var items []models.Translation
	if err := json.Unmarshal(val, &items); err != nil {
		slog.Warn("translation cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("translation cache hit", "key", key)
	return items, true
}

// Set stores the translations of a marketplace with the configured TTL.
func (c *TranslationCache) Set(ctx context.Context, marketplaceID uuid.UUID, items []models.Translation) {
	key := TranslationKey(marketplaceID)
	if items == nil {
		items = []models.Translation{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		slog.Warn("translation cache encode error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("translation cache set error", "key", key, "error", err)
	}
}

// Invalidate drops the cached translations of a marketplace.
func (c *TranslationCache) Invalidate(ctx context.Context, marketplaceID uuid.UUID) {
	key := TranslationKey(marketplaceID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("translation cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("translation cache invalidated", "key", key)
}
