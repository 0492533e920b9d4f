package score

import "github.com/rkaushal27/tailorcv/internal/config"

// Interpretation is the human-readable reading of a score. Derived, never
// stored.
type Interpretation struct {
	Category       string
	Interpretation string
	Recommendation string
	Color          string // terminal color hint: green, blue, orange, red, gray
}

// Interpret maps a score onto the four-tier threshold table. Tier lower
// bounds are inclusive. A nil score yields the Unknown category.
func Interpret(score *int, thresholds config.ScoringConfig) Interpretation {
	if score == nil {
		return Interpretation{
			Category:       "Unknown",
			Interpretation: "Unable to determine score",
			Recommendation: "Please try analyzing again",
			Color:          "gray",
		}
	}

	switch s := *score; {
	case s >= thresholds.Excellent:
		return Interpretation{
			Category:       "Excellent",
			Interpretation: "Your resume is well-matched to this position",
			Recommendation: "Consider applying with confidence. Minor tweaks may further optimize.",
			Color:          "green",
		}
	case s >= thresholds.Good:
		return Interpretation{
			Category:       "Good",
			Interpretation: "Your resume shows good alignment with requirements",
			Recommendation: "Apply after implementing suggested improvements for better chances.",
			Color:          "blue",
		}
	case s >= thresholds.Fair:
		return Interpretation{
			Category:       "Fair",
			Interpretation: "Your resume partially matches the requirements",
			Recommendation: "Significant improvements needed. Focus on addressing key gaps.",
			Color:          "orange",
		}
	default:
		return Interpretation{
			Category:       "Needs Improvement",
			Interpretation: "Your resume has limited alignment with this position",
			Recommendation: "Consider if this role matches your background. Major revisions needed.",
			Color:          "red",
		}
	}
}
