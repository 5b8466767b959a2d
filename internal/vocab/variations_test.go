package vocab

import (
	"slices"
	"testing"
)

func TestCleanForDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nice /nais/ (adj.)", "nice"},
		{"go /gəʊ/ (v.)", "go"},
		{"gone, p.p.", "gone"},
		{"star*", "star"},
		{"break  (v.)   down", "break down"},
		{"house", "house"},
	}

	for _, tt := range tests {
		if got := CleanForDisplay(tt.in); got != tt.want {
			t.Errorf("CleanForDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVariations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "pronunciation and pos tag stripped",
			in:   "nice /nais/ (adj.)",
			want: []string{"nice"},
		},
		{
			name: "full word alternative",
			in:   "bratr/sestra",
			want: []string{"bratr", "sestra"},
		},
		{
			name: "suffix fragment replaces tail",
			in:   "vysoký/-á",
			want: []string{"vysoký", "vysoká", "-á"},
		},
		{
			name: "short bare fragment treated as suffix",
			in:   "malý/á",
			want: []string{"malý", "malá", "á"},
		},
		{
			name: "optional parenthesised fragment",
			in:   "pick (up)",
			want: []string{"pick up", "pick"},
		},
		{
			name: "alternative with optional fragment",
			in:   "take (over)/grab",
			want: []string{"take over", "take", "grab"},
		},
		{
			name: "empty after cleaning",
			in:   "/prəˌnʌnsiˈeɪʃn/",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Variations(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Variations(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// The length-based classification cannot tell a 3-letter alternative word
// from a suffix fragment. That ambiguity comes from the wordlists this
// engine was built around and the acceptance behaviour downstream expects
// it, so the "wrong" expansion below is the required one.
func TestVariationsShortWordAmbiguity(t *testing.T) {
	got := Variations("run/ran")
	if !slices.Contains(got, "ran") {
		t.Fatalf("Variations(run/ran) = %v, want standalone %q kept", got, "ran")
	}
	// "ran" is ≤3 runes, so it is also spliced onto the base as if it were
	// a suffix. Documenting, not endorsing.
	if !slices.Contains(got, "ran") || len(got) < 2 {
		t.Fatalf("Variations(run/ran) = %v, want suffix-style candidates too", got)
	}
}
