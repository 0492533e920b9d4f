package score

import (
	"errors"
	"testing"
)

func TestExtract_Patterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"labeled ats score", "Here is my analysis. ATS Score: 75/100. Keyword coverage is fine.", 75},
		{"labeled ats score no denominator", "ATS Score: 75", 75},
		{"plain score label", "Score: 62\nGood alignment overall.", 62},
		{"bare fraction", "I would rate this resume 81/100 for this role.", 81},
		{"lowercase fallback", "overall score 55 out of a possible hundred", 55},
		{"case insensitive", "ats score: 33/100", 33},
		{"colon with spaces", "ATS Score:  90", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_ClampsOutOfRange(t *testing.T) {
	got, err := Extract("ATS Score: 150/100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Errorf("Extract clamped = %d, want 100", got)
	}
}

func TestExtract_SpecificPatternWinsOverFallback(t *testing.T) {
	text := "ATS Score: 42. Note the market pays up to 77/100 percentile salaries."
	got, err := Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("Extract = %d, want 42 (labeled score must beat bare fraction)", got)
	}
}

func TestExtract_NoScore(t *testing.T) {
	_, err := Extract("The resume reads well but lacks quantified impact statements.")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
