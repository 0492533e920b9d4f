package score

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrNotFound reports that no score pattern matched the response text.
// Callers treat this as "score unknown", not as a failed operation.
var ErrNotFound = errors.New("no score found in response")

// patterns are tried in order; the first match anywhere in the text wins.
// The more specific labeled forms must precede the bare fallback so a
// properly labeled score beats an unrelated number elsewhere in the text.
// Order is observable behavior; do not reorder.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ATS Score[:\s]+(\d+)(?:/100)?`),
	regexp.MustCompile(`(?i)Score[:\s]+(\d+)(?:/100)?`),
	regexp.MustCompile(`(?i)(\d+)/100`),
	regexp.MustCompile(`(?i)score[:\s]+(\d+)`),
}

// Extract parses an unstructured response for a compatibility score.
// The captured integer is clamped to [0,100].
func Extract(responseText string) (int, error) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(responseText)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return clamp(n, 0, 100), nil
	}
	return 0, ErrNotFound
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
