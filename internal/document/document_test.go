package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtract_Txt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("  John Doe\nSenior Engineer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "John Doe\nSenior Engineer" {
		t.Errorf("Extract = %q", got)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.odt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Extract(path)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractBytes_EmptyDocument(t *testing.T) {
	_, err := ExtractBytes([]byte("   \n\t  "), "txt")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("err = %v, want ErrEmptyDocument", err)
	}
}

func TestExtractBytes_ExtensionNormalization(t *testing.T) {
	got, err := ExtractBytes([]byte("text body"), ".TXT")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "text body" {
		t.Errorf("ExtractBytes = %q", got)
	}
}

func TestExtractBytes_MalformedPDF(t *testing.T) {
	if _, err := ExtractBytes([]byte("not a pdf at all"), "pdf"); err == nil {
		t.Error("expected error for malformed pdf bytes")
	}
}

func TestExtractBytes_MalformedDocx(t *testing.T) {
	if _, err := ExtractBytes([]byte("not a zip archive"), "docx"); err == nil {
		t.Error("expected error for malformed docx bytes")
	}
}

func TestCleanText(t *testing.T) {
	in := "  John   Doe  \n\n\n  Senior    Engineer  \n"
	want := "John Doe\nSenior Engineer"
	if got := CleanText(in); got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}
}

func TestCleanText_Empty(t *testing.T) {
	if got := CleanText(""); got != "" {
		t.Errorf("CleanText(\"\") = %q", got)
	}
}

func TestDetectSections(t *testing.T) {
	text := `John Doe
jdoe@example.com | 555-0100

EXPERIENCE
Senior Engineer at Acme

EDUCATION
BS Computer Science, State University

SKILLS
Go, Python, Kubernetes`

	got := DetectSections(text)
	if !got.HasContact || !got.HasExperience || !got.HasEducation || !got.HasSkills {
		t.Errorf("DetectSections = %+v, want all true", got)
	}

	sparse := DetectSections("just a paragraph about nothing in particular")
	if sparse.HasContact || sparse.HasExperience || sparse.HasEducation || sparse.HasSkills {
		t.Errorf("DetectSections(sparse) = %+v, want all false", sparse)
	}
}

func TestBaseResume_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "base_resume.txt")
	text := "John Doe\nSenior Engineer"

	if err := SaveBaseResume(path, text); err != nil {
		t.Fatalf("SaveBaseResume: %v", err)
	}
	got, err := LoadBaseResume(path)
	if err != nil {
		t.Fatalf("LoadBaseResume: %v", err)
	}
	if got != text {
		t.Errorf("LoadBaseResume = %q, want %q", got, text)
	}
}

func TestLoadBaseResume_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBaseResume(path); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("err = %v, want ErrEmptyDocument", err)
	}
}
