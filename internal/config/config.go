package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for tailorcv.
type Config struct {
	Backend  BackendConfig
	Paths    PathsConfig
	Scoring  ScoringConfig
	Keywords []string
	Logging  LoggingConfig
}

// BackendConfig describes the Ollama-compatible generation backend.
type BackendConfig struct {
	BaseURL     string        // e.g. http://localhost:11434
	Model       string        // model name, e.g. "mistral"
	Timeout     time.Duration // per-request timeout
	Temperature float64       // sampling temperature
	MaxTokens   int           // num_predict budget
}

// PathsConfig holds file locations used across the tool.
type PathsConfig struct {
	BaseResume   string // canonical resume text
	Applications string // application ledger CSV
	LogFile      string // optional log file; empty means stderr only
	Templates    string // prompt templates YAML; empty means embedded defaults
}

// ScoringConfig holds the ascending interpretation thresholds.
// A score below Fair is "Needs Improvement".
type ScoringConfig struct {
	Fair      int
	Good      int
	Excellent int
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// defaultKeywords is the fixed quick-match vocabulary. Treated as config
// data: a keywords list in the YAML file replaces it wholesale.
var defaultKeywords = []string{
	"python", "java", "javascript", "react", "node", "sql",
	"aws", "azure", "docker", "kubernetes", "git",
	"machine learning", "data science", "agile", "scrum",
	"leadership", "management", "communication",
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Backend  rawBackendConfig `yaml:"backend"`
	Paths    rawPathsConfig   `yaml:"paths"`
	Scoring  rawScoringConfig `yaml:"scoring"`
	Keywords []string         `yaml:"keywords"`
	Logging  LoggingConfig    `yaml:"logging"`
}

type rawBackendConfig struct {
	BaseURL     string   `yaml:"base_url"`
	Model       string   `yaml:"model"`
	Timeout     string   `yaml:"timeout"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
}

type rawPathsConfig struct {
	BaseResume   string `yaml:"base_resume"`
	Applications string `yaml:"applications_csv"`
	LogFile      string `yaml:"log_file"`
	Templates    string `yaml:"templates"`
}

type rawScoringConfig struct {
	Fair      int `yaml:"fair_threshold"`
	Good      int `yaml:"good_threshold"`
	Excellent int `yaml:"excellent_threshold"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "mistral",
			Timeout:     120 * time.Second,
			Temperature: 0.7,
			MaxTokens:   2000,
		},
		Paths: PathsConfig{
			BaseResume:   "data/base_resume.txt",
			Applications: "data/applications.csv",
		},
		Scoring:  ScoringConfig{Fair: 40, Good: 60, Excellent: 80},
		Keywords: defaultKeywords,
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads and parses the YAML config file at path, fills defaults,
// validates it, and returns Config. A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Backend.BaseURL != "" {
		cfg.Backend.BaseURL = strings.TrimRight(raw.Backend.BaseURL, "/")
	}
	if raw.Backend.Model != "" {
		cfg.Backend.Model = raw.Backend.Model
	}
	if raw.Backend.Timeout != "" {
		d, err := time.ParseDuration(raw.Backend.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse backend.timeout %q: %w", raw.Backend.Timeout, err)
		}
		cfg.Backend.Timeout = d
	}
	if raw.Backend.Temperature != nil {
		cfg.Backend.Temperature = *raw.Backend.Temperature
	}
	if raw.Backend.MaxTokens > 0 {
		cfg.Backend.MaxTokens = raw.Backend.MaxTokens
	}

	if raw.Paths.BaseResume != "" {
		cfg.Paths.BaseResume = raw.Paths.BaseResume
	}
	if raw.Paths.Applications != "" {
		cfg.Paths.Applications = raw.Paths.Applications
	}
	cfg.Paths.LogFile = raw.Paths.LogFile
	cfg.Paths.Templates = raw.Paths.Templates

	if raw.Scoring.Fair > 0 {
		cfg.Scoring.Fair = raw.Scoring.Fair
	}
	if raw.Scoring.Good > 0 {
		cfg.Scoring.Good = raw.Scoring.Good
	}
	if raw.Scoring.Excellent > 0 {
		cfg.Scoring.Excellent = raw.Scoring.Excellent
	}

	if len(raw.Keywords) > 0 {
		cfg.Keywords = raw.Keywords
	}
	if raw.Logging.Level != "" {
		cfg.Logging.Level = raw.Logging.Level
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if cfg.Backend.Model == "" {
		return fmt.Errorf("backend.model is required")
	}
	if cfg.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %v", cfg.Backend.Timeout)
	}
	if cfg.Backend.Temperature < 0 || cfg.Backend.Temperature > 2 {
		return fmt.Errorf("backend.temperature must be in [0,2], got %v", cfg.Backend.Temperature)
	}
	if cfg.Backend.MaxTokens <= 0 {
		return fmt.Errorf("backend.max_tokens must be positive, got %d", cfg.Backend.MaxTokens)
	}

	s := cfg.Scoring
	if !(0 < s.Fair && s.Fair < s.Good && s.Good < s.Excellent && s.Excellent <= 100) {
		return fmt.Errorf("scoring thresholds must satisfy 0 < fair < good < excellent <= 100, got %d/%d/%d",
			s.Fair, s.Good, s.Excellent)
	}

	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel maps a config level string to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown logging.level %q", level)
	}
}
