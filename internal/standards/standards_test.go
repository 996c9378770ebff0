package standards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_BuiltinPython(t *testing.T) {
	std, err := NewStore().Load("python")
	require.NoError(t, err)
	require.Equal(t, "python", std.Language)
	require.Equal(t, "Python Standards", std.Meta.Name)
	require.Contains(t, std.Rules.FileStructure.RequiredFiles, "pyproject.toml")
	require.Equal(t, 100, std.Rules.Formatting.MaxLineLength)
}

func TestLoad_UnknownLanguage(t *testing.T) {
	_, err := NewStore().Load("fortran")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestLoad_CachesResult(t *testing.T) {
	store := NewStore()
	first, err := store.Load("python")
	require.NoError(t, err)
	second, err := store.Load("python")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestList_SortedByLanguage(t *testing.T) {
	metas, err := NewStore().List()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	require.Equal(t, "Python Standards", metas[0].Name)
	require.Equal(t, "TypeScript Standards", metas[1].Name)
}

func TestNewStoreFromDir_Override(t *testing.T) {
	dir := t.TempDir()
	lang := filepath.Join(dir, "python")
	require.NoError(t, os.MkdirAll(lang, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(lang, "metadata.json"),
		[]byte(`{"name": "House Python", "version": "9.9.9"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(lang, "config.toml"),
		[]byte("version = \"9.9.9\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(lang, "rules.yaml"),
		[]byte("formatting:\n  max_line_length: 80\n"), 0o600))

	std, err := NewStoreFromDir(dir).Load("python")
	require.NoError(t, err)
	require.Equal(t, "House Python", std.Meta.Name)
	require.Equal(t, 80, std.Rules.Formatting.MaxLineLength)
}

func TestDetectLanguages(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(""), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tsconfig.json"), []byte("{}"), 0o600))

	langs := DetectLanguages(root)
	require.Equal(t, []string{"python", "typescript"}, langs, "each language detected once")
}

func TestDetectLanguages_Empty(t *testing.T) {
	require.Empty(t, DetectLanguages(t.TempDir()))
}
