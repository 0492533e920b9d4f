package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rkaushal27/tailorcv/internal/analyzer"
	"github.com/rkaushal27/tailorcv/internal/prompt"
)

// ErrEmptyInput reports a blank base resume or job description.
var ErrEmptyInput = errors.New("empty input")

// Generator produces tailored resume text from a base resume and a job
// description.
type Generator struct {
	gen     analyzer.TextGenerator
	prompts *prompt.Store
	logger  *slog.Logger
}

// NewGenerator creates a generation facade over gen and the template store.
func NewGenerator(gen analyzer.TextGenerator, prompts *prompt.Store, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{gen: gen, prompts: prompts, logger: logger}
}

// TailoringPrompt builds the user/system prompt pair for tailoring
// baseResume to jobDescription. It fails fast on blank inputs before any
// backend call. A non-empty background selects the background-aware
// template, falling back to the standard one if absent.
func (g *Generator) TailoringPrompt(baseResume, jobDescription, background string) (userPrompt, systemPrompt string, err error) {
	if strings.TrimSpace(baseResume) == "" {
		g.logger.Error("base resume is empty")
		return "", "", fmt.Errorf("base resume: %w", ErrEmptyInput)
	}
	if strings.TrimSpace(jobDescription) == "" {
		g.logger.Error("job description is empty")
		return "", "", fmt.Errorf("job description: %w", ErrEmptyInput)
	}

	name := "resume_generation"
	vars := map[string]string{
		"base_resume":     baseResume,
		"job_description": jobDescription,
	}
	if strings.TrimSpace(background) != "" {
		if _, ok := g.prompts.Get("resume_generation_with_background"); ok {
			name = "resume_generation_with_background"
			vars["background"] = background
		} else {
			g.logger.Warn("background template not found, using standard")
		}
	}

	tmpl, ok := g.prompts.Get(name)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", prompt.ErrTemplateMissing, name)
	}
	userPrompt, err = tmpl.Render(vars)
	if err != nil {
		return "", "", fmt.Errorf("render %s: %w", name, err)
	}
	return userPrompt, tmpl.System, nil
}

// GenerateTailoredResume rewrites baseResume to target jobDescription.
func (g *Generator) GenerateTailoredResume(ctx context.Context, baseResume, jobDescription, background string) (string, error) {
	userPrompt, systemPrompt, err := g.TailoringPrompt(baseResume, jobDescription, background)
	if err != nil {
		return "", err
	}

	g.logger.Info("generating tailored resume")
	generated, err := g.gen.Generate(ctx, userPrompt, systemPrompt)
	if err != nil {
		return "", fmt.Errorf("resume generation: %w", err)
	}

	g.logger.Info("resume generation complete", "length", len(generated))
	return generated, nil
}

// SuggestImprovements asks for concrete changes that would align resumeText
// with the job description, reusing the scoring templates.
func (g *Generator) SuggestImprovements(ctx context.Context, resumeText, jobDescription, background string) (string, error) {
	name := "ats_scoring"
	vars := map[string]string{
		"resume_text":     resumeText,
		"job_description": jobDescription,
	}
	if strings.TrimSpace(background) != "" {
		if _, ok := g.prompts.Get("ats_scoring_with_background"); ok {
			name = "ats_scoring_with_background"
			vars["background"] = background
		}
	}

	tmpl, ok := g.prompts.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", prompt.ErrTemplateMissing, name)
	}
	userPrompt, err := tmpl.Render(vars)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	suggestions, err := g.gen.Generate(ctx, userPrompt, tmpl.System)
	if err != nil {
		return "", fmt.Errorf("improvement suggestions: %w", err)
	}
	return suggestions, nil
}

// ValidationResult is the advisory outcome of checking a generated resume.
// Callers are not required to block on IsValid being false.
type ValidationResult struct {
	IsValid bool
	Issues  []string
}

// Validate checks a generated resume against the base: enough content,
// actually different, and of plausible length.
func (g *Generator) Validate(generated, base string) ValidationResult {
	result := ValidationResult{IsValid: true}

	if len(strings.TrimSpace(generated)) <= 100 {
		result.Issues = append(result.Issues, "Generated resume is too short")
		result.IsValid = false
	}
	if generated == base {
		result.Issues = append(result.Issues, "Generated resume is identical to base")
		result.IsValid = false
	}
	if n := len(generated); n < 500 || n >= 10000 {
		result.Issues = append(result.Issues, "Generated resume length is unusual")
		result.IsValid = false
	}

	g.logger.Info("resume validation", "valid", result.IsValid, "issues", len(result.Issues))
	return result
}

// FormatResume normalizes whitespace: trims lines, collapses runs of blank
// lines to a single one so section breaks survive.
func FormatResume(resumeText string) string {
	lines := strings.Split(resumeText, "\n")
	formatted := make([]string, 0, len(lines))
	prevEmpty := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			formatted = append(formatted, line)
			prevEmpty = false
		} else if !prevEmpty {
			formatted = append(formatted, "")
			prevEmpty = true
		}
	}
	return strings.Join(formatted, "\n")
}
