// Package registry loads and persists the canonical version registry,
// the TOML record at .armature/versions.toml that maps logical version
// keys (python, node, project, ...) to their current values and groups
// the files each version must be patched into.
//
// The registry being missing or unparseable is the one fatal error in
// armature: nothing downstream can run without it.
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/armature-dev/armature/internal/log"
	"github.com/armature-dev/armature/internal/paths"
)

// DefaultPath is the registry location relative to the project root.
const DefaultPath = ".armature/versions.toml"

// FileName is the registry file's name inside the .armature directory.
const FileName = "versions.toml"

// Schema is the on-disk shape of the registry file.
type Schema struct {
	Versions     map[string]string   `toml:"versions" validate:"required,min=1"`
	FilePatterns map[string][]string `toml:"file_patterns" validate:"required"`
}

// Registry is the loaded version registry for one project root.
type Registry struct {
	root     string
	path     string
	schema   Schema
	readOnly bool
}

var validate = validator.New()

// Load reads and validates the registry for the given project root.
// A missing or malformed file is a fatal error for the caller. Worktree
// redirect files inside .armature are followed, so linked git worktrees
// share one registry.
func Load(root string) (*Registry, error) {
	path := filepath.Join(paths.ResolveConfigDir(root), FileName)

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is rooted at the user's project root
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("versions registry not found: %s", path)
		}
		return nil, fmt.Errorf("reading versions registry: %w", err)
	}

	var schema Schema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing versions registry %s: %w", path, err)
	}
	if err := validate.Struct(schema); err != nil {
		return nil, fmt.Errorf("invalid versions registry %s: %w", path, err)
	}

	log.Debug(log.CatRegistry, "Registry loaded", "path", path, "keys", len(schema.Versions))
	return &Registry{root: root, path: path, schema: schema}, nil
}

// SetReadOnly disables persistence. Set is then an in-memory update
// only; used for dry runs.
func (r *Registry) SetReadOnly(ro bool) {
	r.readOnly = ro
}

// Root returns the project root the registry was loaded from.
func (r *Registry) Root() string {
	return r.root
}

// Get returns the value for a logical key, or the empty string when
// the key is absent. Callers treat empty string as "unset".
func (r *Registry) Get(key string) string {
	return r.schema.Versions[key]
}

// Set updates a key in memory and immediately rewrites the whole
// registry file. Every mutation persists; there is no batching.
func (r *Registry) Set(key, value string) error {
	r.schema.Versions[key] = value
	if r.readOnly {
		return nil
	}
	if err := r.save(); err != nil {
		return fmt.Errorf("persisting registry after set %s=%s: %w", key, value, err)
	}
	log.Debug(log.CatRegistry, "Registry key set", "key", key, "value", value)
	return nil
}

// Patterns returns the ordered file paths for a pattern category, or
// an empty slice for unknown categories.
func (r *Registry) Patterns(category string) []string {
	return r.schema.FilePatterns[category]
}

// Keys returns every version key currently in the registry.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.schema.Versions))
	for k := range r.schema.Versions {
		keys = append(keys, k)
	}
	return keys
}

// save rewrites the backing file via a temp file and rename, so a
// crash mid-write cannot truncate the registry itself.
func (r *Registry) save() error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".versions.toml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if err := toml.NewEncoder(temp).Encode(r.schema); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("encoding registry: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, r.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
