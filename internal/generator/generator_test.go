package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rkaushal27/tailorcv/internal/prompt"
)

// failingGenerator fails the test if the backend is reached at all.
type failingGenerator struct {
	t *testing.T
}

func (f *failingGenerator) Generate(ctx context.Context, p, system string) (string, error) {
	f.t.Error("backend must not be called for invalid input")
	return "", nil
}

type stubGenerator struct {
	response string
}

func (s *stubGenerator) Generate(ctx context.Context, p, system string) (string, error) {
	return s.response, nil
}

func defaultStore(t *testing.T) *prompt.Store {
	t.Helper()
	store, err := prompt.LoadDefaults()
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestGenerateTailoredResume_EmptyInputsFailFast(t *testing.T) {
	g := NewGenerator(&failingGenerator{t: t}, defaultStore(t), nil)

	if _, err := g.GenerateTailoredResume(context.Background(), "   ", "a jd", ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty base resume: err = %v, want ErrEmptyInput", err)
	}
	if _, err := g.GenerateTailoredResume(context.Background(), "a resume", "\n\t", ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty job description: err = %v, want ErrEmptyInput", err)
	}
}

func TestGenerateTailoredResume(t *testing.T) {
	g := NewGenerator(&stubGenerator{response: "tailored resume text"}, defaultStore(t), nil)

	got, err := g.GenerateTailoredResume(context.Background(), "base resume", "job description", "")
	if err != nil {
		t.Fatalf("GenerateTailoredResume: %v", err)
	}
	if got != "tailored resume text" {
		t.Errorf("got %q", got)
	}
}

func TestTailoringPrompt_IncludesInputs(t *testing.T) {
	g := NewGenerator(&stubGenerator{}, defaultStore(t), nil)

	user, system, err := g.TailoringPrompt("BASE RESUME BODY", "JD BODY", "BACKGROUND NOTES")
	if err != nil {
		t.Fatalf("TailoringPrompt: %v", err)
	}
	if !strings.Contains(user, "BASE RESUME BODY") || !strings.Contains(user, "JD BODY") {
		t.Error("user prompt should contain base resume and job description")
	}
	if !strings.Contains(user, "BACKGROUND NOTES") {
		t.Error("user prompt should contain the background when provided")
	}
	if system == "" {
		t.Error("system prompt should not be empty for the default templates")
	}
}

func TestValidate(t *testing.T) {
	g := NewGenerator(&stubGenerator{}, defaultStore(t), nil)
	base := strings.Repeat("base resume line\n", 40)

	t.Run("valid", func(t *testing.T) {
		generated := strings.Repeat("tailored resume line\n", 40)
		result := g.Validate(generated, base)
		if !result.IsValid {
			t.Errorf("IsValid = false, issues: %v", result.Issues)
		}
	})

	t.Run("too short", func(t *testing.T) {
		result := g.Validate(strings.Repeat("x", 50), base)
		if result.IsValid {
			t.Error("50-char output should be invalid")
		}
		if len(result.Issues) < 2 {
			// Fails both the minimum-content and plausible-length checks.
			t.Errorf("Issues = %v, want short and unusual-length", result.Issues)
		}
	})

	t.Run("identical to base", func(t *testing.T) {
		result := g.Validate(base, base)
		if result.IsValid {
			t.Error("unchanged output should be invalid")
		}
		found := false
		for _, issue := range result.Issues {
			if strings.Contains(issue, "identical") {
				found = true
			}
		}
		if !found {
			t.Errorf("Issues = %v, want identical-to-base", result.Issues)
		}
	})

	t.Run("too long", func(t *testing.T) {
		result := g.Validate(strings.Repeat("y", 10000), base)
		if result.IsValid {
			t.Error("10000-char output should be invalid")
		}
	})
}

func TestFormatResume(t *testing.T) {
	in := "  John Doe  \n\n\n\nExperience\n  Engineer  \n\n\nEducation"
	want := "John Doe\n\nExperience\nEngineer\n\nEducation"
	if got := FormatResume(in); got != want {
		t.Errorf("FormatResume = %q, want %q", got, want)
	}
}
