package models

import "testing"

func TestMarketplaceFullDomain(t *testing.T) {
	m := &Marketplace{Ident: "bikes"}

	tests := []struct {
		name   string
		scheme string
		domain string
		want   string
	}{
		{name: "with protocol", scheme: "https", domain: "example.com", want: "https://bikes.example.com"},
		{name: "dev domain", scheme: "http", domain: "lvh.me:8080", want: "http://bikes.lvh.me:8080"},
		{name: "host only", scheme: "", domain: "example.com", want: "bikes.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.FullDomain(tt.scheme, tt.domain); got != tt.want {
				t.Errorf("FullDomain(%q, %q) = %q, want %q", tt.scheme, tt.domain, got, tt.want)
			}
		})
	}
}
