package slug

import "testing"

// TestGenerate exercises the slug generator with typical marketplace and
// listing names, special characters, unicode and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "default marketplace name", input: "Trial Marketplace", want: "trial-marketplace"},
		{name: "name with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "single word", input: "GoLang", want: "golang"},
		{name: "already a slug", input: "bike-rental", want: "bike-rental"},

		// --- Special characters ---
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-how-s-it-going"},
		{name: "ampersand becomes and", input: "Rock & Roll", want: "rock-and-roll"},
		{name: "at sign dropped", input: "Meet @ Noon", want: "meet-noon"},
		{name: "parentheses and brackets", input: "Version (2.0) [Beta]", want: "version-2-0-beta"},
		{name: "slashes and pipes", input: "Frontend/Backend | Full Stack", want: "frontend-backend-full-stack"},
		{name: "underscores", input: "trial_site", want: "trial-site"},

		// --- Unicode ---
		{name: "french accents folded", input: "Café Résumé", want: "cafe-resume"},
		{name: "german umlauts folded", input: "Über die Brücke", want: "uber-die-brucke"},
		{name: "finnish letters folded", input: "Kävelykatu Äänekoski", want: "kavelykatu-aanekoski"},
		{name: "danish o slash", input: "Søren Kierkegaard", want: "soren-kierkegaard"},
		{name: "german sharp s", input: "Straße", want: "strasse"},
		{name: "ligatures", input: "Æblegrød & Œuvre", want: "aeblegrod-and-oeuvre"},
		{name: "polish l stroke", input: "Łódź", want: "lodz"},
		{name: "icelandic letters", input: "Þórðargata", want: "thordargata"},
		{name: "only non-latin characters", input: "日本語", want: ""},

		// --- Whitespace and hyphens ---
		{name: "leading and trailing spaces", input: "  hello world  ", want: "hello-world"},
		{name: "multiple spaces collapsed", input: "hello    world", want: "hello-world"},
		{name: "tabs and newlines", input: "hello\tbig\nworld", want: "hello-big-world"},
		{name: "hyphens and spaces mixed", input: "  --hello -- world--  ", want: "hello-world"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "     ", want: ""},
		{name: "only special characters", input: "!@#$%^*()", want: ""},
		{name: "single character", input: "A", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"hello-world", "my-market-2026", "a", "123"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "shorter than limit", input: "market", n: 30, want: "market"},
		{name: "exactly the limit", input: "abcde", n: 5, want: "abcde"},
		{name: "cut to limit", input: "the-very-long-marketplace-name-for-bikes", n: 30, want: "the-very-long-marketplace-name"},
		{name: "zero means unlimited", input: "unlimited-name", n: 0, want: "unlimited-name"},
		{name: "negative means unlimited", input: "unlimited-name", n: -1, want: "unlimited-name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
