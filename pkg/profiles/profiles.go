// Package profiles provides the built-in processing profiles and loads
// custom ones from YAML.
package profiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/postprocess"
	"gopkg.in/yaml.v3"
)

// DefaultName is the profile used when none is given.
const DefaultName = "academic_paper"

var ErrUnknownProfile = errors.New("unknown profile")

type builtin struct {
	key string
	new func() models.Profile
}

// Listed in the order they are shown to users.
var builtins = []builtin{
	{"academic_paper", AcademicPaper},
	{"language_textbook", LanguageTextbook},
	{"generic", Generic},
}

// Names returns the keys of the built-in profiles.
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.key
	}
	return names
}

// List returns a fresh copy of every built-in profile.
func List() []models.Profile {
	out := make([]models.Profile, len(builtins))
	for i, b := range builtins {
		out[i] = b.new()
	}
	return out
}

// Get returns a fresh copy of the named built-in profile.
func Get(name string) (models.Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, b := range builtins {
		if b.key == key {
			return b.new(), nil
		}
	}
	return models.Profile{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, name, strings.Join(Names(), ", "))
}

// Load reads a profile from a YAML file. Fields missing from the file keep
// the values of the base profile, which is the generic profile unless the
// file names another built-in under "base".
func Load(path string) (models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML profile document.
func Parse(data []byte) (models.Profile, error) {
	var head struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	base := "generic"
	if head.Base != "" {
		base = head.Base
	}
	p, err := Get(base)
	if err != nil {
		return models.Profile{}, err
	}
	if head.Base == "" {
		p.DocumentType = models.DocumentTypeCustom
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := Validate(p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Validate checks the numeric settings and compiles every pattern.
func Validate(p models.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name is required")
	}
	if _, err := models.ParseDocumentType(string(p.DocumentType)); err != nil {
		return err
	}
	if p.BatchSize < 1 {
		return fmt.Errorf("profile %q: batch_size must be at least 1, got %d", p.Name, p.BatchSize)
	}
	if p.ImageScale <= 0 {
		return fmt.Errorf("profile %q: image_scale must be positive, got %v", p.Name, p.ImageScale)
	}
	if p.MinQualityScore < 0 || p.MinQualityScore > 100 {
		return fmt.Errorf("profile %q: min_quality_score must be within 0-100, got %v", p.Name, p.MinQualityScore)
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("profile %q: max_retries must not be negative", p.Name)
	}
	if _, err := postprocess.New(p); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

// Resolve accepts either a built-in name or a path to a YAML profile.
func Resolve(nameOrPath string) (models.Profile, error) {
	if nameOrPath == "" {
		return Get(DefaultName)
	}
	ext := strings.ToLower(filepath.Ext(nameOrPath))
	if ext == ".yaml" || ext == ".yml" || strings.ContainsRune(nameOrPath, os.PathSeparator) {
		return Load(nameOrPath)
	}
	return Get(nameOrPath)
}

// Marshal renders a profile as YAML.
func Marshal(p models.Profile) ([]byte, error) {
	return yaml.Marshal(p)
}
