package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidate_EmptyConfig(t *testing.T) {
	require.NoError(t, Validate(Config{}))
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_UnknownLanguage(t *testing.T) {
	cfg := Config{Scaffold: ScaffoldConfig{Language: "cobol"}}
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "scaffold.language")
}

func TestValidate_StandardsDirMissing(t *testing.T) {
	cfg := Config{Standards: StandardsConfig{Dir: filepath.Join(t.TempDir(), "nope")}}
	err := Validate(cfg)
	require.Error(t, err)
}

func TestValidate_StandardsDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standards")
	require.NoError(t, os.WriteFile(path, []byte("not a dir"), 0o600))

	cfg := Config{Standards: StandardsConfig{Dir: path}}
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a directory")
}

func TestDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	var out map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &out))
	require.Contains(t, out, "ui")
	require.Contains(t, out, "scaffold")
}

func TestWriteDefaultConfig_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".armature", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Armature Configuration")
}
