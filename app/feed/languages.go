package feed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var DefaultLanguages = []Language{
	{Name: "english", Code: "en"},
	{Name: "german", Code: "de"},
	{Name: "french", Code: "fr"},
}

var (
	languageNamePattern = regexp.MustCompile(`^[a-z_]+$`)
	languageCodePattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z]+)?$`)
)

type languagesFile struct {
	Languages []Language `yaml:"languages"`
}

// LoadLanguages reads the language list from a YAML file. An empty path or
// an empty list yields DefaultLanguages.
func LoadLanguages(path string) ([]Language, error) {
	if path == "" {
		return copyLanguages(DefaultLanguages), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var lf languagesFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(lf.Languages) == 0 {
		return copyLanguages(DefaultLanguages), nil
	}

	if err := validateLanguages(lf.Languages); err != nil {
		return nil, fmt.Errorf("invalid languages %s: %w", path, err)
	}

	return lf.Languages, nil
}

func validateLanguages(langs []Language) error {
	seen := make(map[string]bool, len(langs))

	for i, lang := range langs {
		if lang.Name == "" || lang.Code == "" {
			return fmt.Errorf("language at index %d requires lang and code", i)
		}
		if !languageNamePattern.MatchString(lang.Name) {
			return fmt.Errorf("invalid language name at index %d: %s", i, lang.Name)
		}
		// The code ends up in file names.
		if !languageCodePattern.MatchString(lang.Code) {
			return fmt.Errorf("invalid language code at index %d: %s", i, lang.Code)
		}
		if seen[lang.Code] {
			return fmt.Errorf("duplicate language code: %s", lang.Code)
		}
		seen[lang.Code] = true
	}

	return nil
}

func copyLanguages(langs []Language) []Language {
	return append([]Language(nil), langs...)
}
