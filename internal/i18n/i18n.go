// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n holds the default message catalog used when provisioning a
// marketplace: page content and listing shape texts. Messages are embedded
// YAML files; English is the fallback language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

// Catalog translates default message ids.
type Catalog struct {
	bundle *i18n.Bundle
}

// Load builds a Catalog from the embedded message files.
func Load() (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.Glob(localeFiles, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n glob: %w", err)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(localeFiles, f); err != nil {
			return nil, fmt.Errorf("i18n load %s: %w", path.Base(f), err)
		}
	}

	slog.Debug("i18n catalog loaded", "files", len(files))
	return &Catalog{bundle: bundle}, nil
}

// T renders message id in locale, falling back to English. data fills
// template placeholders and may be nil. When the id is unknown the id itself
// is returned so missing texts stay visible.
func (c *Catalog) T(locale, id string, data map[string]any) string {
	loc := i18n.NewLocalizer(c.bundle, locale, language.English.String())
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if msg != "" {
		return msg
	}
	slog.Warn("i18n message missing", "id", id, "locale", locale, "error", err)
	return id
}
