package i18n

import (
	"strings"
	"testing"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestCatalogT(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name   string
		locale string
		id     string
		want   string
	}{
		{name: "english", locale: "en", id: "listing_shapes.sell.name", want: "Selling"},
		{name: "finnish", locale: "fi", id: "listing_shapes.sell.name", want: "Myydään"},
		{name: "unknown language falls back to english", locale: "sv", id: "listing_shapes.rent.action_button", want: "Rent"},
		{name: "unknown id returns id", locale: "en", id: "does.not.exist", want: "does.not.exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.T(tt.locale, tt.id, nil); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.id, got, tt.want)
			}
		})
	}
}

func TestCatalogT_TemplateData(t *testing.T) {
	c := testCatalog(t)

	got := c.T("en", "infos.how_to_use.default_content", map[string]any{"MarketplaceName": "Bike Market"})
	if !strings.Contains(got, "Bike Market") {
		t.Errorf("expected marketplace name in %q", got)
	}
}
