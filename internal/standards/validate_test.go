package standards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newPythonProject builds a minimal compliant python project root.
func newPythonProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	write("pyproject.toml", "[project]\nname = \"demo\"\n")
	write("README.md", "# demo\n")
	write("src/demo/__init__.py", "__version__ = \"0.1.0\"\n")
	write("tests/test_demo.py", "def test_ok():\n    assert True\n")
	return root
}

func TestValidateProject_CompliantScoresFull(t *testing.T) {
	root := newPythonProject(t)
	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.True(t, result.Compliant)
	require.Empty(t, result.Issues)
	require.Equal(t, 100.0, result.Score)
}

func TestValidateProject_MissingRoot(t *testing.T) {
	_, err := NewStore().ValidateProject(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestValidateProject_MissingRequiredFile(t *testing.T) {
	root := newPythonProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "README.md")))

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.False(t, result.Compliant)

	violations := result.Violations()
	require.Len(t, violations, 1)
	require.Contains(t, violations[0].Message, "Missing required file: README.md")
	require.Equal(t, 90.0, result.Score)
}

func TestValidateProject_MissingRequiredDirectory(t *testing.T) {
	root := newPythonProject(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "tests")))

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.False(t, result.Compliant)
	require.Contains(t, result.Violations()[0].Message, "Missing required directory: tests")
}

func TestValidateProject_NamingViolation(t *testing.T) {
	root := newPythonProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "demo", "BadName.py"),
		[]byte("x = 1\n"), 0o600))

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.False(t, result.Compliant)

	violations := result.Violations()
	require.Len(t, violations, 1)
	require.Contains(t, violations[0].Message, "BadName.py")
	require.Equal(t, "naming.file_pattern", violations[0].RuleID)
}

func TestValidateProject_LineLengthWarning(t *testing.T) {
	root := newPythonProject(t)
	long := "x = \"" + strings.Repeat("a", 120) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "demo", "wide.py"),
		[]byte(long), 0o600))

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.True(t, result.Compliant, "warnings alone keep the project compliant")

	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, "formatting.line_length", warnings[0].RuleID)
	require.Equal(t, 1, warnings[0].Line)
	require.Equal(t, 98.0, result.Score)
}

func TestValidateProject_TrailingWhitespaceWarning(t *testing.T) {
	root := newPythonProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "demo", "trail.py"),
		[]byte("x = 1  \n"), 0o600))

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, "formatting.trailing_whitespace", warnings[0].RuleID)
}

func TestValidateProject_SkipsVendorDirs(t *testing.T) {
	root := newPythonProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".venv", "lib"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".venv", "lib", "VeryBadName.py"),
		[]byte("x = 1   \n"), 0o600))

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.True(t, result.Compliant)
	require.Empty(t, result.Issues, "files under .venv must not be scanned")
}

func TestValidateProject_ScoreFloorsAtZero(t *testing.T) {
	root := t.TempDir()
	// A python project with every structural rule violated, repeatedly.
	require.NoError(t, os.WriteFile(filepath.Join(root, "requirements.txt"), []byte(""), 0o600))
	for i := 0; i < 5; i++ {
		name := strings.Repeat("X", i+1) + ".py"
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x = 1\n"), 0o600))
	}

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.False(t, result.Compliant)
	require.GreaterOrEqual(t, result.Score, 0.0)
}

func TestValidateProject_UndetectedLanguageIsClean(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0o600))

	result, err := NewStore().ValidateProject(root)
	require.NoError(t, err)
	require.True(t, result.Compliant)
	require.Equal(t, 100.0, result.Score)
}
