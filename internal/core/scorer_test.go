package core

import (
	"testing"

	"pgregory.net/rapid"
)

func TestScore_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		candidate string
		want      float64
	}{
		{"exact", "Jane Smith", "Jane Smith", 100},
		{"exact ignoring case and punctuation", "jane   smith!", "Jane Smith", 100},
		{"slug form equals display name", "jane-smith", "Jane Smith", 90},
		{"candidate extends reference", "Jane", "Jane Smith", 70},
		{"reference extends candidate", "Jane Smith Extra", "Jane Smith", 60},
		{"all words present out of order", "Smith Jane", "Jane Smith", 50},
		{"partial word overlap", "jane doe", "Jane Smith", 10},
		{"no overlap", "xyz", "Jane Smith", 0},
		{"empty reference", "", "Jane Smith", 0},
		{"empty candidate", "Jane", "", 0},
		{"punctuation only", "!!!", "Jane Smith", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.reference, tt.candidate)
			if got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.reference, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestScore_Properties(t *testing.T) {
	names := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 -]{0,30}`)

	t.Run("identity scores exact", rapid.MakeCheck(func(t *rapid.T) {
		s := names.Draw(t, "s")
		if got := Score(s, s); got != 100 {
			t.Fatalf("Score(%q, %q) = %v, want 100", s, s, got)
		}
	}))

	t.Run("score is never negative", rapid.MakeCheck(func(t *rapid.T) {
		a := names.Draw(t, "a")
		b := names.Draw(t, "b")
		if got := Score(a, b); got < 0 {
			t.Fatalf("Score(%q, %q) = %v, negative", a, b, got)
		}
	}))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Smith", "jane-smith"},
		{"jane-smith", "jane-smith"},
		{"  Jane   Smith  ", "jane-smith"},
		{"Jane O'Brien-Smith", "jane-o-brien-smith"},
		{"Q3 Planning!", "q3-planning"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		once := Slugify(s)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify(%q): %q then %q", s, once, twice)
		}
	})
}
