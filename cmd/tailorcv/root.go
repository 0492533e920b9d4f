package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/analyzer"
	"github.com/rkaushal27/tailorcv/internal/config"
	"github.com/rkaushal27/tailorcv/internal/generator"
	"github.com/rkaushal27/tailorcv/internal/ledger"
	"github.com/rkaushal27/tailorcv/internal/llm"
	"github.com/rkaushal27/tailorcv/internal/prompt"
	"github.com/rkaushal27/tailorcv/internal/score"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tailorcv",
	Short: "Resume tailoring against job descriptions with a local LLM",
	Long: "tailorcv reviews and scores your resume against job descriptions using a\n" +
		"locally hosted Ollama-compatible backend, generates tailored resume text,\n" +
		"and tracks your applications in a flat CSV ledger.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: TAILORCV_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > TAILORCV_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("TAILORCV_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(cfg *config.Config, dbg bool) *slog.Logger {
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	if dbg {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if cfg.Paths.LogFile != "" {
		if dir := filepath.Dir(cfg.Paths.LogFile); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		if f, err := os.OpenFile(cfg.Paths.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			w = io.MultiWriter(os.Stderr, f)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup loads config and wires the shared logger and client. Commands that
// only touch the ledger skip the client.
func setup() (*config.Config, *slog.Logger, *llm.Client, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg, debug)
	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}
	client := llm.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.Model,
		cfg.Backend.Temperature,
		cfg.Backend.MaxTokens,
		httpClient,
		logger,
	)
	return cfg, logger, client, nil
}

func buildAnalyzer(cfg *config.Config, client *llm.Client, logger *slog.Logger) (*analyzer.Analyzer, error) {
	prompts, err := prompt.Load(cfg.Paths.Templates)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return analyzer.NewAnalyzer(client, prompts, cfg.Scoring, cfg.Keywords, logger), nil
}

func buildGenerator(cfg *config.Config, client *llm.Client, logger *slog.Logger) (*generator.Generator, error) {
	prompts, err := prompt.Load(cfg.Paths.Templates)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return generator.NewGenerator(client, prompts, logger), nil
}

func openLedger(cfg *config.Config, logger *slog.Logger) (*ledger.Ledger, error) {
	return ledger.Open(cfg.Paths.Applications, logger)
}

// interpretationColors maps color hints to lipgloss colors for terminal output.
var interpretationColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("42"),
	"blue":   lipgloss.Color("39"),
	"orange": lipgloss.Color("214"),
	"red":    lipgloss.Color("196"),
	"gray":   lipgloss.Color("245"),
}

func printInterpretation(s *int, interp score.Interpretation) {
	color, ok := interpretationColors[interp.Color]
	if !ok {
		color = interpretationColors["gray"]
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(color)

	if s != nil {
		fmt.Printf("%s %s\n", style.Render(fmt.Sprintf("ATS Score: %d/100", *s)), style.Render("("+interp.Category+")"))
	} else {
		fmt.Println(style.Render("ATS Score: unknown (" + interp.Category + ")"))
	}
	fmt.Println(interp.Interpretation)
	fmt.Println(interp.Recommendation)
}
