package fold

import (
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestFold_Table(t *testing.T) {
	f := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "payments api",
			out:  "payments api",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'p', 'a', 'y', 0x80, ' ', 'a', 'p', 'i'}),
			out:  "pay api",
		},
		{
			name: "case fold",
			in:   "PayMents",
			out:  "payments",
		},
		{
			name: "remove zero-widths",
			in:   "pa​y‍ments", // ZERO WIDTH SPACE + ZERO WIDTH JOINER
			out:  "payments",
		},
		{
			name: "remove combining marks",
			in:   "résumé", // "résumé" using combining acute accents
			out:  "resume",
		},
		{
			name: "width fold fullwidth",
			in:   "ＡＰＩ catalog", // fullwidth letters
			out:  "api catalog",
		},
		{
			name: "nfkc ligature",
			in:   "oﬃce api", // ffi ligature
			out:  "office api",
		},
		{
			name: "collapse whitespace",
			in:   "  billing \t\n  service  ",
			out:  "billing service",
		},
		{
			name: "empty",
			in:   "",
			out:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Fold(tc.in); got != tc.out {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	f := New()

	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{name: "exact", haystack: "Payments API", needle: "payments", want: true},
		{name: "case insensitive", haystack: "payments", needle: "PAYMENTS", want: true},
		{name: "diacritic insensitive", haystack: "Résumé Service", needle: "resume", want: true},
		{name: "fullwidth needle", haystack: "api catalog", needle: "ＡＰＩ", want: true},
		{name: "empty needle matches", haystack: "anything", needle: "", want: true},
		{name: "whitespace needle matches", haystack: "anything", needle: "   ", want: true},
		{name: "no hit", haystack: "payments", needle: "billing", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Match(tc.haystack, tc.needle); got != tc.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tc.haystack, tc.needle, got, tc.want)
			}
		})
	}
}

// Folding twice is the same as folding once.
func TestFold_Idempotent(t *testing.T) {
	f := New()
	for _, s := range []string{"Résumé  Service", "ＡＰＩ", "plain"} {
		once := f.Fold(s)
		if twice := f.Fold(once); twice != once {
			t.Fatalf("Fold not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}
