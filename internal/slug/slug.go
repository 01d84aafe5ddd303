// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonAlphanumeric matches every run of characters that can't appear in a slug.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// transliterations covers Latin letters that have no canonical decomposition,
// so fold leaves them untouched.
var transliterations = strings.NewReplacer(
	"ø", "o", "æ", "ae", "œ", "oe", "ß", "ss",
	"ł", "l", "đ", "d", "ð", "d", "þ", "th", "ħ", "h", "ı", "i",
)

// Generate creates a URL-friendly slug from the given string.
// Accents are folded to their base letter and letters such as "ø" or "ß" are
// transliterated. "&" becomes "and" and every run of other non-alphanumeric
// characters collapses into a single hyphen.
// Example: "Café & Bar, Helsinki!" → "cafe-and-bar-helsinki"
func Generate(s string) string {
	result := fold(strings.TrimSpace(s))
	result = strings.ToLower(result)
	result = transliterations.Replace(result)
	result = strings.ReplaceAll(result, "&", " and ")
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Truncate cuts a slug down to at most n bytes. Slugs produced by Generate
// are pure ASCII so the cut never splits a rune. n <= 0 means no limit.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

// fold strips combining marks after canonical decomposition ("é" → "e").
// A transformer chain keeps state, so a fresh one is built per call.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
