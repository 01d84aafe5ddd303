// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package localetree renders the category hierarchy of a marketplace together
// with the listing shapes attached to each category. Category labels are
// picked from per-locale translations by locale preference; listing shape
// labels come from a translation lookup supplied by the caller.
package localetree

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"marketkit/internal/models"
)

// ErrNoTranslation is returned when a category has no translations at all,
// so no label can be picked for it.
var ErrNoTranslation = errors.New("no translation available")

// ShapeNode is a listing shape as shown under its category. Label is nil
// when the translation lookup found no text.
type ShapeNode struct {
	ID    uuid.UUID `json:"id"`
	Label *string   `json:"label"`
}

// Node is one category of the rendered tree.
type Node struct {
	ID            uuid.UUID   `json:"id"`
	Label         string      `json:"label"`
	ListingShapes []ShapeNode `json:"listing_shapes"`
	Subcategories []Node      `json:"subcategories"`
}

// TextResolver looks up the text of a translation key in a locale.
type TextResolver func(key, locale string) (string, bool)

// Preferences ranks locales: preferred first, then all in order, keeping the
// first occurrence of duplicates. Lower rank means more preferred.
func Preferences(preferred string, all []string) map[string]int {
	prio := make(map[string]int, len(all)+1)
	for _, locale := range append([]string{preferred}, all...) {
		if _, seen := prio[locale]; !seen {
			prio[locale] = len(prio)
		}
	}
	return prio
}

// ResolveLabel picks the name of the most preferred translation. Locales
// missing from the ranking lose against every ranked one; ties keep their
// input order.
func ResolveLabel(translations []models.CategoryTranslation, preferred string, all []string) (string, error) {
	return pickName(translations, Preferences(preferred, all))
}

// BuildTree renders categories and their children recursively. shapes is the
// flat list of the marketplace's listing shapes; each category embeds those
// whose id it references, in the order of shapes. Category graphs must be
// acyclic.
func BuildTree(categories []models.Category, shapes []models.ListingShape, preferred string, all []string, resolve TextResolver) ([]Node, error) {
	b := &builder{
		prio:      Preferences(preferred, all),
		preferred: preferred,
		shapes:    shapes,
		resolve:   resolve,
	}
	return b.nodes(categories)
}

type builder struct {
	prio      map[string]int
	preferred string
	shapes    []models.ListingShape
	resolve   TextResolver
}

func (b *builder) nodes(categories []models.Category) ([]Node, error) {
	nodes := make([]Node, 0, len(categories))
	for _, c := range categories {
		label, err := pickName(c.Translations, b.prio)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", c.ID, err)
		}
		children, err := b.nodes(c.Children)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, Node{
			ID:            c.ID,
			Label:         label,
			ListingShapes: b.embedShapes(c.ListingShapeIDs),
			Subcategories: children,
		})
	}
	return nodes, nil
}

func (b *builder) embedShapes(ids []uuid.UUID) []ShapeNode {
	embedded := make([]ShapeNode, 0, len(ids))
	for _, s := range b.shapes {
		if !slices.Contains(ids, s.ID) {
			continue
		}
		embedded = append(embedded, ShapeNode{ID: s.ID, Label: b.shapeLabel(s.NameTrKey)})
	}
	return embedded
}

func (b *builder) shapeLabel(key string) *string {
	if b.resolve == nil {
		return nil
	}
	text, ok := b.resolve(key, b.preferred)
	if !ok {
		return nil
	}
	return &text
}

func pickName(translations []models.CategoryTranslation, prio map[string]int) (string, error) {
	if len(translations) == 0 {
		return "", ErrNoTranslation
	}
	best := slices.MinFunc(translations, func(a, b models.CategoryTranslation) int {
		return compareRanks(rankOf(prio, a.Locale), rankOf(prio, b.Locale))
	})
	return best.Name, nil
}

// rank is a locale position in the preference order; unranked locales have
// ok == false and sort last.
type rank struct {
	pos int
	ok  bool
}

func rankOf(prio map[string]int, locale string) rank {
	pos, ok := prio[locale]
	return rank{pos: pos, ok: ok}
}

func compareRanks(a, b rank) int {
	switch {
	case !a.ok && !b.ok:
		return 0
	case !a.ok:
		return 1
	case !b.ok:
		return -1
	}
	return cmp.Compare(a.pos, b.pos)
}
