package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/rkaushal27/tailorcv/internal/config"
	"github.com/rkaushal27/tailorcv/internal/prompt"
	"github.com/rkaushal27/tailorcv/internal/score"
)

// TextGenerator produces text from a prompt/system pair. Satisfied by
// *llm.Client.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// Analyzer scores and reviews resumes against job descriptions.
// Each call is independent; there is no cross-call state.
type Analyzer struct {
	gen      TextGenerator
	prompts  *prompt.Store
	scoring  config.ScoringConfig
	keywords []string
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer over the given generator and template store.
// keywords is the quick-match vocabulary (config data).
func NewAnalyzer(gen TextGenerator, prompts *prompt.Store, scoring config.ScoringConfig, keywords []string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		gen:      gen,
		prompts:  prompts,
		scoring:  scoring,
		keywords: keywords,
		logger:   logger,
	}
}

// renderAndGenerate fills the named template and forwards it to the generator.
func (a *Analyzer) renderAndGenerate(ctx context.Context, name string, vars map[string]string) (string, error) {
	tmpl, ok := a.prompts.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", prompt.ErrTemplateMissing, name)
	}
	userPrompt, err := tmpl.Render(vars)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return a.gen.Generate(ctx, userPrompt, tmpl.System)
}

// ReviewResume produces general feedback for a resume with no job
// description in play.
func (a *Analyzer) ReviewResume(ctx context.Context, resumeText string) (string, error) {
	a.logger.Info("starting resume review")
	feedback, err := a.renderAndGenerate(ctx, "resume_review", map[string]string{
		"resume_text": resumeText,
	})
	if err != nil {
		return "", fmt.Errorf("resume review: %w", err)
	}
	return feedback, nil
}

// AnalyzeCompatibility scores the resume against the job description.
// When background is non-empty the background-aware template is preferred,
// falling back to the standard one if absent. The returned score is nil
// when extraction fails even though feedback is present; both are absent
// on upstream failure.
func (a *Analyzer) AnalyzeCompatibility(ctx context.Context, resumeText, jobDescription, background string) (*int, string, error) {
	a.logger.Info("starting compatibility analysis", "background", background != "")

	name := "ats_scoring"
	vars := map[string]string{
		"resume_text":     resumeText,
		"job_description": jobDescription,
	}
	if background != "" {
		if _, ok := a.prompts.Get("ats_scoring_with_background"); ok {
			name = "ats_scoring_with_background"
			vars["background"] = background
		} else {
			a.logger.Warn("background template not found, using standard")
		}
	}

	feedback, err := a.renderAndGenerate(ctx, name, vars)
	if err != nil {
		return nil, "", fmt.Errorf("compatibility analysis: %w", err)
	}

	s, err := score.Extract(feedback)
	if err != nil {
		// Soft condition: feedback is still usable without a number.
		a.logger.Warn("could not extract score from feedback")
		return nil, feedback, nil
	}

	a.logger.Info("compatibility analysis complete", "score", s)
	return &s, feedback, nil
}

// ExtractKeywords asks the backend for the screening keywords in a job
// description.
func (a *Analyzer) ExtractKeywords(ctx context.Context, jobDescription string) (string, error) {
	keywords, err := a.renderAndGenerate(ctx, "keyword_extraction", map[string]string{
		"job_description": jobDescription,
	})
	if err != nil {
		return "", fmt.Errorf("keyword extraction: %w", err)
	}
	return keywords, nil
}

// IdentifyGaps reports the gaps between the resume and the job requirements.
func (a *Analyzer) IdentifyGaps(ctx context.Context, resumeText, jobDescription string) (string, error) {
	gaps, err := a.renderAndGenerate(ctx, "gap_analysis", map[string]string{
		"resume_text":     resumeText,
		"job_description": jobDescription,
	})
	if err != nil {
		return "", fmt.Errorf("gap analysis: %w", err)
	}
	return gaps, nil
}

// Interpret maps a score onto the configured threshold table.
func (a *Analyzer) Interpret(s *int) score.Interpretation {
	return score.Interpret(s, a.scoring)
}

// MatchResult is the outcome of the deterministic keyword check.
type MatchResult struct {
	Matched      []string
	Missing      []string
	MatchRate    float64 // percent, rounded to 2 decimals
	TotalChecked int
}

// QuickKeywordCheck intersects the configured vocabulary with the job
// description, then partitions by presence in the resume. Purely
// deterministic; no backend call.
func (a *Analyzer) QuickKeywordCheck(resumeText, jobDescription string) MatchResult {
	resumeLower := strings.ToLower(resumeText)
	jdLower := strings.ToLower(jobDescription)

	var matched, missing []string
	for _, kw := range a.keywords {
		if !strings.Contains(jdLower, kw) {
			continue
		}
		if strings.Contains(resumeLower, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	total := len(matched) + len(missing)
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(len(matched))/float64(total)*100*100) / 100
	}

	a.logger.Info("quick keyword check", "matched", len(matched), "total", total, "rate", rate)

	return MatchResult{
		Matched:      matched,
		Missing:      missing,
		MatchRate:    rate,
		TotalChecked: total,
	}
}
