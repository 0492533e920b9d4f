package score

import (
	"testing"

	"github.com/rkaushal27/tailorcv/internal/config"
)

var testThresholds = config.ScoringConfig{Fair: 40, Good: 60, Excellent: 80}

func TestInterpret_TierBoundaries(t *testing.T) {
	// Lower bound of each tier is inclusive.
	tests := []struct {
		score int
		want  string
	}{
		{0, "Needs Improvement"},
		{39, "Needs Improvement"},
		{40, "Fair"},
		{59, "Fair"},
		{60, "Good"},
		{79, "Good"},
		{80, "Excellent"},
		{100, "Excellent"},
	}

	for _, tt := range tests {
		s := tt.score
		got := Interpret(&s, testThresholds)
		if got.Category != tt.want {
			t.Errorf("Interpret(%d).Category = %q, want %q", tt.score, got.Category, tt.want)
		}
	}
}

func TestInterpret_NilScore(t *testing.T) {
	got := Interpret(nil, testThresholds)
	if got.Category != "Unknown" {
		t.Errorf("Category = %q, want Unknown", got.Category)
	}
	if got.Color != "gray" {
		t.Errorf("Color = %q, want gray", got.Color)
	}
}

func TestInterpret_ColorsPerTier(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{85, "green"},
		{65, "blue"},
		{45, "orange"},
		{10, "red"},
	}
	for _, tt := range tests {
		s := tt.score
		if got := Interpret(&s, testThresholds).Color; got != tt.want {
			t.Errorf("Interpret(%d).Color = %q, want %q", tt.score, got, tt.want)
		}
	}
}
