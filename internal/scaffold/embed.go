package scaffold

import (
	"embed"
	"io/fs"
)

// projectTemplates embeds the per-language project skeletons.
// The structure is:
//   - templates/<language>/... (template files, .tmpl suffix)
//
// Path segments named "__name__" are replaced with the generated
// project's package name at render time.
//
//go:embed all:templates
var projectTemplates embed.FS

// TemplatesFS returns the embedded filesystem containing project
// skeletons, rooted at the templates directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(projectTemplates, "templates")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
