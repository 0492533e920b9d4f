package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Template is a named system/user prompt pair. The user text carries
// {name} placeholders filled at render time. Immutable after load.
type Template struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// Store holds the loaded prompt templates, keyed by name. Read-only after
// construction.
type Store struct {
	templates map[string]Template
}

//go:embed templates.yaml
var defaultTemplatesRaw []byte

// placeholderRe matches {name} placeholders in template user text.
var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// LoadDefaults parses the templates embedded in the binary.
func LoadDefaults() (*Store, error) {
	return parse(defaultTemplatesRaw)
}

// Load reads a template store from the YAML file at path. An empty path
// falls back to the embedded defaults.
func Load(path string) (*Store, error) {
	if path == "" {
		return LoadDefaults()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Store, error) {
	var templates map[string]Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("template store is empty")
	}
	return &Store{templates: templates}, nil
}

// Get returns the named template. The second return reports whether it exists.
func (s *Store) Get(name string) (Template, bool) {
	t, ok := s.templates[name]
	return t, ok
}

// Names returns the available template names.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	return names
}

// Render substitutes vars into the template's user text. Every placeholder
// referenced by the template must be present in vars; the first missing one
// fails the render.
func (t Template) Render(vars map[string]string) (string, error) {
	var missing string
	out := placeholderRe.ReplaceAllStringFunc(t.User, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %s", ErrMissingVariable, missing)
	}
	return out, nil
}

// Placeholders returns the distinct placeholder names the template references,
// in order of first appearance.
func (t Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(t.User, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
