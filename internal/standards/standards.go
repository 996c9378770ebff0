// Package standards loads per-language coding standards and validates
// projects against them. A standard is three files: metadata.json,
// config.toml, and rules.yaml. Armature ships a built-in set and can
// load a local directory instead.
package standards

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/armature-dev/armature/internal/cachemanager"
	"github.com/armature-dev/armature/internal/log"
)

// Metadata describes a coding standard.
type Metadata struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	LastUpdated string   `json:"last_updated"`
	Maintainer  string   `json:"maintainer"`
}

// Config holds standard-level settings.
type Config struct {
	Version    string `toml:"version"`
	StrictMode bool   `toml:"strict_mode"`
}

// Rules holds the validation rules for one language.
type Rules struct {
	FileStructure struct {
		RequiredDirectories []string `yaml:"required_directories"`
		RequiredFiles       []string `yaml:"required_files"`
	} `yaml:"file_structure"`
	Naming struct {
		// FilePattern is a regex source files' base names must match.
		FilePattern string `yaml:"file_pattern"`
	} `yaml:"naming"`
	Formatting struct {
		MaxLineLength      int  `yaml:"max_line_length"`
		TrailingWhitespace bool `yaml:"trailing_whitespace"` // true = disallowed
	} `yaml:"formatting"`
}

// Standard is one language's fully loaded standard.
type Standard struct {
	Language string
	Meta     Metadata
	Config   Config
	Rules    Rules
}

// Store loads and caches standards from a filesystem.
type Store struct {
	fsys  fs.FS
	cache *cachemanager.ReadThroughCache[string, *Standard, string]
}

// NewStore creates a Store over the built-in standards.
func NewStore() *Store {
	return NewStoreFromFS(DefaultFS())
}

// NewStoreFromDir creates a Store over a local standards directory.
func NewStoreFromDir(dir string) *Store {
	return NewStoreFromFS(os.DirFS(dir))
}

// NewStoreFromFS creates a Store over any standards filesystem.
func NewStoreFromFS(fsys fs.FS) *Store {
	s := &Store{fsys: fsys}
	s.cache = cachemanager.NewReadThroughCache(
		cachemanager.NewInMemoryCacheManager[string, *Standard](
			"standards", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		func(_ context.Context, language string) (*Standard, error) {
			return s.load(language)
		},
		false,
	)
	return s
}

// Load returns the standard for a language, caching the parsed result.
func (s *Store) Load(language string) (*Standard, error) {
	return s.cache.Get(context.Background(), language, language, cachemanager.DefaultExpiration)
}

// load parses the three definition files for one language.
func (s *Store) load(language string) (*Standard, error) {
	if _, err := fs.Stat(s.fsys, language); err != nil {
		return nil, fmt.Errorf("standards for language %q not found", language)
	}

	std := &Standard{Language: language}

	metaData, err := fs.ReadFile(s.fsys, language+"/metadata.json")
	if err != nil {
		return nil, fmt.Errorf("reading %s metadata: %w", language, err)
	}
	if err := json.Unmarshal(metaData, &std.Meta); err != nil {
		return nil, fmt.Errorf("parsing %s metadata: %w", language, err)
	}

	cfgData, err := fs.ReadFile(s.fsys, language+"/config.toml")
	if err != nil {
		return nil, fmt.Errorf("reading %s config: %w", language, err)
	}
	if err := toml.Unmarshal(cfgData, &std.Config); err != nil {
		return nil, fmt.Errorf("parsing %s config: %w", language, err)
	}

	rulesData, err := fs.ReadFile(s.fsys, language+"/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading %s rules: %w", language, err)
	}
	if err := yaml.Unmarshal(rulesData, &std.Rules); err != nil {
		return nil, fmt.Errorf("parsing %s rules: %w", language, err)
	}

	log.Debug(log.CatStandards, "Standard loaded", "language", language, "version", std.Config.Version)
	return std, nil
}

// List returns metadata for every available standard, sorted by
// language.
func (s *Store) List() ([]Metadata, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading standards: %w", err)
	}

	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)

	metas := make([]Metadata, 0, len(langs))
	for _, lang := range langs {
		std, err := s.Load(lang)
		if err != nil {
			log.Warn(log.CatStandards, "Skipping unloadable standard", "language", lang, "error", err)
			continue
		}
		metas = append(metas, std.Meta)
	}
	return metas, nil
}

// languageMarkers maps marker files to the language they indicate.
var languageMarkers = []struct {
	file     string
	language string
}{
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"package.json", "typescript"},
	{"tsconfig.json", "typescript"},
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
}

// DetectLanguages inspects a project root for language marker files.
func DetectLanguages(root string) []string {
	var langs []string
	seen := make(map[string]bool)
	for _, m := range languageMarkers {
		if seen[m.language] {
			continue
		}
		if _, err := os.Stat(root + "/" + m.file); err == nil {
			langs = append(langs, m.language)
			seen[m.language] = true
		}
	}
	return langs
}
