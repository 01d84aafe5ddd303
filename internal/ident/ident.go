// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ident allocates unique, URL-safe identifiers from human-readable
// names. A candidate is rejected while it is reserved or reported as taken by
// the caller's existence check, and retried with numeric suffixes.
package ident

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"marketkit/internal/slug"
)

// DefaultMaxAttempts bounds the suffix loop when Allocator.MaxAttempts is zero.
const DefaultMaxAttempts = 10_000

var (
	// ErrAllocationExhausted is returned when no free candidate was found
	// within the configured number of attempts.
	ErrAllocationExhausted = errors.New("identifier allocation exhausted")

	// ErrEmptyBase is returned when the base name produces an empty slug
	// and no fallback is configured.
	ErrEmptyBase = errors.New("identifier base is empty")
)

// ExistsFunc reports whether candidate is already taken. It is typically
// backed by a uniqueness query against persisted records.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Allocator holds the configuration of one allocation site.
// The zero value allocates uncapped slugs with no reserved words.
type Allocator struct {
	// Reserved words that are never handed out.
	Reserved map[string]struct{}
	// MaxLength truncates the slugified base. Zero means no limit.
	MaxLength int
	// Fallback replaces a base that slugifies to nothing. Used verbatim.
	Fallback string
	// MaxAttempts caps the number of candidates checked.
	MaxAttempts int
}

// NewReserved builds a reserved word set from a list.
func NewReserved(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Base normalizes a name into the slug the allocator starts from.
func (a *Allocator) Base(name string) (string, error) {
	base := slug.Truncate(slug.Generate(name), a.MaxLength)
	if base == "" {
		if a.Fallback == "" {
			return "", ErrEmptyBase
		}
		base = a.Fallback
	}
	return base, nil
}

// Allocate returns the first candidate among base, base1, base2, ... that is
// neither reserved nor reported as existing. The existence check is advisory:
// persistence must still enforce uniqueness.
func (a *Allocator) Allocate(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base, err := a.Base(name)
	if err != nil {
		return "", err
	}

	limit := a.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}

	candidate := base
	for i := 1; i <= limit; i++ {
		taken, err := a.taken(ctx, candidate, exists)
		if err != nil {
			return "", fmt.Errorf("check identifier %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}

	return "", fmt.Errorf("%w: %q after %d attempts", ErrAllocationExhausted, base, limit)
}

func (a *Allocator) taken(ctx context.Context, candidate string, exists ExistsFunc) (bool, error) {
	if _, reserved := a.Reserved[candidate]; reserved {
		return true, nil
	}
	if exists == nil {
		return false, nil
	}
	return exists(ctx, candidate)
}
