package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults_HasAllTemplates(t *testing.T) {
	store, err := LoadDefaults()
	if err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}

	required := []string{
		"resume_review",
		"ats_scoring",
		"ats_scoring_with_background",
		"resume_generation",
		"resume_generation_with_background",
		"keyword_extraction",
		"gap_analysis",
	}
	for _, name := range required {
		tmpl, ok := store.Get(name)
		if !ok {
			t.Errorf("missing template %q", name)
			continue
		}
		if strings.TrimSpace(tmpl.User) == "" {
			t.Errorf("template %q has empty user text", name)
		}
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "ats_scoring:\n  system: sys\n  user: \"score {resume_text} against {job_description}\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tmpl, ok := store.Get("ats_scoring")
	if !ok {
		t.Fatal("ats_scoring missing from loaded store")
	}
	if tmpl.System != "sys" {
		t.Errorf("System = %q, want sys", tmpl.System)
	}
	if _, ok := store.Get("resume_review"); ok {
		t.Error("file store should not inherit embedded defaults")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	store, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := store.Get("resume_review"); !ok {
		t.Error("empty path should load the embedded defaults")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing templates file")
	}
}

func TestRender_SubstitutesVariables(t *testing.T) {
	tmpl := Template{User: "resume: {resume_text}\njd: {job_description}"}
	got, err := tmpl.Render(map[string]string{
		"resume_text":     "my resume",
		"job_description": "the jd",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "resume: my resume\njd: the jd"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_MissingVariable(t *testing.T) {
	tmpl := Template{User: "resume: {resume_text} bg: {background}"}
	_, err := tmpl.Render(map[string]string{"resume_text": "x"})
	if !errors.Is(err, ErrMissingVariable) {
		t.Fatalf("err = %v, want ErrMissingVariable", err)
	}
	if !strings.Contains(err.Error(), "background") {
		t.Errorf("error should name the missing variable, got %q", err.Error())
	}
}

func TestRender_RepeatedPlaceholder(t *testing.T) {
	tmpl := Template{User: "{name} and {name}"}
	got, err := tmpl.Render(map[string]string{"name": "go"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "go and go" {
		t.Errorf("Render = %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	tmpl := Template{User: "{a} {b} {a}"}
	got := tmpl.Placeholders()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Placeholders = %v, want [a b]", got)
	}
}
