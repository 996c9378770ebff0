package standards

import (
	"embed"
	"io/fs"
)

// defaultStandards embeds the built-in per-language standards.
// The structure is:
//   - defs/<language>/metadata.json (name, version, maintainer)
//   - defs/<language>/config.toml   (standard-level settings)
//   - defs/<language>/rules.yaml    (validation rules)
//
//go:embed defs
var defaultStandards embed.FS

// DefaultFS returns the embedded filesystem of built-in standards,
// rooted at the definitions directory.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultStandards, "defs")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
