// Package scaffold generates new project skeletons from embedded
// templates. Each supported language ships a directory of .tmpl files
// rendered with text/template; the version numbers baked into the
// rendered files come from the project's version registry so a fresh
// project starts in sync.
package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/armature-dev/armature/internal/log"
)

// Context carries the values templates interpolate.
type Context struct {
	Name           string   // Project display name
	PackageName    string   // Sanitized import/package name
	Description    string
	Author         string
	License        string
	Year           int
	ProjectVersion string
	PythonVersion  string
	PythonTarget   string
	PythonWindow   []string
	NodeVersion    string
}

// Defaults fills unset context fields with usable values.
func (c *Context) defaults() {
	if c.PackageName == "" {
		c.PackageName = PackageName(c.Name)
	}
	if c.Year == 0 {
		c.Year = time.Now().Year()
	}
	if c.ProjectVersion == "" {
		c.ProjectVersion = "0.1.0"
	}
	if c.Description == "" {
		c.Description = c.Name
	}
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// PackageName sanitizes a project name into a package identifier:
// "My Service" becomes "my_service".
func PackageName(name string) string {
	s := nonWord.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(s, "_")
}

// Generator renders project skeletons from a template filesystem.
type Generator struct {
	fsys fs.FS
}

// New creates a Generator over the embedded templates.
func New() *Generator {
	return &Generator{fsys: TemplatesFS()}
}

// NewFromFS creates a Generator over any template filesystem; used by
// tests and by local template overrides.
func NewFromFS(fsys fs.FS) *Generator {
	return &Generator{fsys: fsys}
}

// Languages lists the languages the generator has templates for.
func (g *Generator) Languages() ([]string, error) {
	entries, err := fs.ReadDir(g.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs, nil
}

// Create renders the language's skeleton into dest. Existing files are
// refused unless force is set; directories are created as needed.
func (g *Generator) Create(dest, language string, ctx Context, force bool) error {
	langs, err := g.Languages()
	if err != nil {
		return err
	}
	root := ""
	for _, l := range langs {
		if l == language {
			root = l
		}
	}
	if root == "" {
		return fmt.Errorf("no templates for language %q (available: %s)",
			language, strings.Join(langs, ", "))
	}

	ctx.defaults()
	log.Info(log.CatScaffold, "Generating project", "dest", dest, "language", language, "name", ctx.Name)

	sub, err := fs.Sub(g.fsys, root)
	if err != nil {
		return fmt.Errorf("opening %s templates: %w", language, err)
	}

	return fs.WalkDir(sub, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		target := filepath.Join(dest, renderPath(path, ctx.PackageName))
		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("refusing to overwrite %s (use --force)", target)
			}
		}

		content, err := fs.ReadFile(sub, path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		rendered, err := render(path, string(content), ctx)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(rendered), fileMode(path)); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		log.Debug(log.CatScaffold, "File rendered", "path", target)
		return nil
	})
}

// renderPath maps a template path to its destination: the .tmpl
// suffix is stripped and __name__ segments become the package name.
func renderPath(path, packageName string) string {
	path = strings.TrimSuffix(path, ".tmpl")
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "__name__" {
			parts[i] = packageName
		}
	}
	return filepath.Join(parts...)
}

// render executes one template file.
func render(name, content string, ctx Context) (string, error) {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, ctx); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return sb.String(), nil
}

// fileMode preserves executability for scripts.
func fileMode(path string) os.FileMode {
	if strings.HasSuffix(strings.TrimSuffix(path, ".tmpl"), ".sh") {
		return 0o750
	}
	return 0o644
}
