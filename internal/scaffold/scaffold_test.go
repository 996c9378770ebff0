package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

func testContext() Context {
	return Context{
		Name:           "Acme Service",
		Description:    "An example service",
		Author:         "Acme Inc",
		License:        "MIT",
		ProjectVersion: "0.1.0",
		PythonVersion:  "3.14",
		PythonTarget:   "py314",
		PythonWindow:   []string{"3.12", "3.13", "3.14"},
		NodeVersion:    "24",
	}
}

func TestPackageName(t *testing.T) {
	require.Equal(t, "acme_service", PackageName("Acme Service"))
	require.Equal(t, "my_cli", PackageName("my-cli"))
	require.Equal(t, "x", PackageName("  x  "))
}

func TestLanguages_ListsEmbeddedTemplates(t *testing.T) {
	langs, err := New().Languages()
	require.NoError(t, err)
	require.Equal(t, []string{"python", "typescript"}, langs)
}

func TestCreate_UnknownLanguage(t *testing.T) {
	err := New().Create(t.TempDir(), "cobol", testContext(), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no templates for language")
	require.Contains(t, err.Error(), "python")
}

func TestCreate_PythonProject(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, New().Create(dest, "python", testContext(), false))

	// Template suffix is stripped and __name__ segments are renamed.
	data, err := os.ReadFile(filepath.Join(dest, "pyproject.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), `python_version = "3.14"`)
	require.Contains(t, string(data), `target-version = ["py314"]`)

	initPy, err := os.ReadFile(filepath.Join(dest, "src", "acme_service", "__init__.py"))
	require.NoError(t, err)
	require.Contains(t, string(initPy), `__version__ = "0.1.0"`)

	ci, err := os.ReadFile(filepath.Join(dest, ".github", "workflows", "ci.yml"))
	require.NoError(t, err)
	require.Contains(t, string(ci), `python-version: ["3.12", "3.13", "3.14"]`)
	require.Contains(t, string(ci), "${{ matrix.python-version }}")

	install, err := os.Stat(filepath.Join(dest, "install.sh"))
	require.NoError(t, err)
	require.NotZero(t, install.Mode()&0o100, "install script must be executable")
}

func TestCreate_PyprojectParsesAsTOML(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, New().Create(dest, "python", testContext(), false))

	var doc map[string]any
	_, err := toml.DecodeFile(filepath.Join(dest, "pyproject.toml"), &doc)
	require.NoError(t, err)

	project, ok := doc["project"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "acme_service", project["name"])
	require.Equal(t, "0.1.0", project["version"])
}

func TestCreate_TypescriptProject(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, New().Create(dest, "typescript", testContext(), false))

	pkg, err := os.ReadFile(filepath.Join(dest, "package.json"))
	require.NoError(t, err)
	require.Contains(t, string(pkg), `"version": "0.1.0"`)
	require.Contains(t, string(pkg), `">=24"`)

	ci, err := os.ReadFile(filepath.Join(dest, ".github", "workflows", "ci.yml"))
	require.NoError(t, err)
	require.Contains(t, string(ci), `node-version: "24"`)
}

func TestCreate_RefusesOverwrite(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "README.md"), []byte("mine"), 0o600))

	err := New().Create(dest, "python", testContext(), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "refusing to overwrite")

	data, err := os.ReadFile(filepath.Join(dest, "README.md"))
	require.NoError(t, err)
	require.Equal(t, "mine", string(data))
}

func TestCreate_ForceOverwrites(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "README.md"), []byte("mine"), 0o600))

	require.NoError(t, New().Create(dest, "python", testContext(), true))

	data, err := os.ReadFile(filepath.Join(dest, "README.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Acme Service")
}

func TestContext_Defaults(t *testing.T) {
	ctx := Context{Name: "My Project"}
	ctx.defaults()
	require.Equal(t, "my_project", ctx.PackageName)
	require.Equal(t, "0.1.0", ctx.ProjectVersion)
	require.NotZero(t, ctx.Year)
	require.Equal(t, "My Project", ctx.Description)
}
