package feed

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadLanguagesDefaults(t *testing.T) {
	langs, err := LoadLanguages("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(langs) != 3 {
		t.Fatalf("Expected 3 languages, got %d", len(langs))
	}
	if langs[0] != (Language{Name: "english", Code: "en"}) {
		t.Errorf("Expected english first, got %+v", langs[0])
	}

	langs[0].Code = "xx"
	if DefaultLanguages[0].Code != "en" {
		t.Error("Expected defaults to be copied")
	}
}

func TestLoadLanguagesFromFile(t *testing.T) {
	path := writeTestFile(t, "languages.yml", `
languages:
  - lang: english
    code: en
  - lang: brazilian
    code: pt-br
`)

	langs, err := LoadLanguages(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(langs) != 2 {
		t.Fatalf("Expected 2 languages, got %d", len(langs))
	}
	if langs[1].Name != "brazilian" || langs[1].Code != "pt-br" {
		t.Errorf("Expected brazilian/pt-br, got %+v", langs[1])
	}
}

func TestLoadLanguagesEmptyList(t *testing.T) {
	path := writeTestFile(t, "languages.yml", "languages: []\n")

	langs, err := LoadLanguages(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(langs) != len(DefaultLanguages) {
		t.Errorf("Expected default languages, got %+v", langs)
	}
}

func TestLoadLanguagesErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "invalid yaml",
			content: "languages: [",
			errText: "failed to parse YAML",
		},
		{
			name:    "missing code",
			content: "languages:\n  - lang: english\n",
			errText: "requires lang and code",
		},
		{
			name:    "path in code",
			content: "languages:\n  - lang: english\n    code: ../en\n",
			errText: "invalid language code",
		},
		{
			name:    "uppercase name",
			content: "languages:\n  - lang: English\n    code: en\n",
			errText: "invalid language name",
		},
		{
			name:    "duplicate code",
			content: "languages:\n  - lang: english\n    code: en\n  - lang: american\n    code: en\n",
			errText: "duplicate language code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "languages.yml", tt.content)

			_, err := LoadLanguages(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing '%s', got: %v", tt.errText, err)
			}
		})
	}
}

func TestLoadLanguagesMissingFile(t *testing.T) {
	if _, err := LoadLanguages(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
