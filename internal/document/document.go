package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedType reports a file extension the parser cannot handle.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrEmptyDocument reports a document that parsed but yielded no text.
var ErrEmptyDocument = errors.New("document contains no extractable text")

// Extract reads the file at path and returns its plain text. Supported
// extensions: .pdf, .docx, .txt (anything else is ErrUnsupportedType).
func Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ExtractBytes(data, ext)
}

// ExtractBytes extracts plain text from raw document bytes. ext is the
// file extension without the dot.
func ExtractBytes(data []byte, ext string) (string, error) {
	var text string
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		text, err = extractPDF(data)
	case "docx", "doc":
		text, err = extractDocx(data)
	case "txt":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return strings.TrimSpace(text), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip unreadable pages, keep the rest
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

var multiSpaceRe = regexp.MustCompile(` +`)

// CleanText normalizes extracted text: trims lines, drops blank ones, and
// collapses runs of spaces.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return multiSpaceRe.ReplaceAllString(strings.Join(lines, "\n"), " ")
}

// Sections flags which common resume sections the text appears to contain.
type Sections struct {
	HasContact    bool
	HasExperience bool
	HasEducation  bool
	HasSkills     bool
}

// DetectSections runs cheap marker heuristics over the resume text.
func DetectSections(text string) Sections {
	lower := strings.ToLower(text)
	containsAny := func(markers ...string) bool {
		for _, m := range markers {
			if strings.Contains(lower, m) {
				return true
			}
		}
		return false
	}
	return Sections{
		HasContact:    containsAny("email", "phone", "@", "linkedin"),
		HasExperience: containsAny("experience", "work history", "employment"),
		HasEducation:  containsAny("education", "degree", "university", "college"),
		HasSkills:     containsAny("skills", "technologies", "proficient"),
	}
}

// LoadBaseResume reads the canonical resume text from path.
func LoadBaseResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load base resume: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("load base resume: %w", ErrEmptyDocument)
	}
	return text, nil
}

// SaveBaseResume writes the canonical resume text to path, creating parent
// directories as needed.
func SaveBaseResume(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save base resume: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save base resume: %w", err)
	}
	return nil
}
