package patch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// The patterns below are keyed to the literal forms version numbers
// take in the supported file formats: quoted TOML/INI assignment,
// bracketed list-of-quoted-strings assignment, and YAML "key: value".
// They intentionally match by text, not by parsing each format's
// grammar, so a rule can span pyproject.toml, CI workflows, and shell
// scripts alike.
var (
	rePythonVersion    = regexp.MustCompile(`python_version\s*=\s*"[^"]*"`)
	reTargetVersion    = regexp.MustCompile(`target_version\s*=\s*\[[^\]]*\]`)
	reTargetVersionKeb = regexp.MustCompile(`target-version\s*=\s*\[[^\]]*\]`)
	reMinPythonYAML    = regexp.MustCompile(`min_python_version:\s*"[^"]*"`)
	rePythonMatrixYAML = regexp.MustCompile(`python-version:\s*\[[^\]]*\]`)
	rePythonPinYAML    = regexp.MustCompile(`python-version:\s*"[^"]*"`)

	reNodeVersion    = regexp.MustCompile(`node_version\s*=\s*"[^"]*"`)
	reMinNodeYAML    = regexp.MustCompile(`min_node_version:\s*"[^"]*"`)
	reNodeMatrixYAML = regexp.MustCompile(`node-version:\s*\[[^\]]*\]`)
	reNodePinYAML    = regexp.MustCompile(`node-version:\s*"[^"]*"`)

	reTOMLVersion = regexp.MustCompile(`(?m)^version\s*=\s*"[^"]*"`)
	rePyDunder    = regexp.MustCompile(`__version__\s*=\s*"[^"]*"`)
	reJSONVersion = regexp.MustCompile(`"version":\s*"[^"]*"`)
	reGoVersion   = regexp.MustCompile(`\bVersion\s*=\s*"[^"]*"`)

	reRequiredVersion = regexp.MustCompile(`required_version="[^"]*"`)
)

// quoteList renders versions as a bracketed list of quoted strings,
// the form CI matrices and target-version arrays use.
func quoteList(versions []string) string {
	quoted := make([]string, len(versions))
	for i, v := range versions {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// PythonConfigRules builds the rule set for python_configs files.
// The supported window feeds CI test matrices; the target id feeds
// formatter target-version arrays.
func PythonConfigRules(version, targetID string, window []string) []Rule {
	return []Rule{
		{Pattern: rePythonVersion, Replacement: fmt.Sprintf(`python_version = %q`, version)},
		{Pattern: reTargetVersion, Replacement: fmt.Sprintf(`target_version = [%q]`, targetID)},
		{Pattern: reTargetVersionKeb, Replacement: fmt.Sprintf(`target-version = [%q]`, targetID)},
		{Pattern: reMinPythonYAML, Replacement: fmt.Sprintf(`min_python_version: %q`, version)},
		{Pattern: rePythonMatrixYAML, Replacement: "python-version: " + quoteList(window)},
		{Pattern: rePythonPinYAML, Replacement: fmt.Sprintf(`python-version: %q`, version)},
	}
}

// NodeConfigRules builds the rule set for typescript_configs files.
// The matrix rule runs before the pin rule so the rewritten list is
// not re-matched.
func NodeConfigRules(version string) []Rule {
	return []Rule{
		{Pattern: reNodeVersion, Replacement: fmt.Sprintf(`node_version = %q`, version)},
		{Pattern: reMinNodeYAML, Replacement: fmt.Sprintf(`min_node_version: %q`, version)},
		{Pattern: reNodeMatrixYAML, Rewrite: nodeMatrixRewrite(version)},
		{Pattern: reNodePinYAML, Replacement: fmt.Sprintf(`node-version: %q`, version)},
	}
}

// nodeMatrixRewrite updates a CI node-version list in place: the
// newest (last) entry becomes the new version, earlier entries are
// kept so older LTS lines stay covered. Short lists grow instead of
// losing their only entry.
func nodeMatrixRewrite(version string) func(string) string {
	return func(match string) string {
		open := strings.Index(match, "[")
		closing := strings.LastIndex(match, "]")
		if open < 0 || closing < open {
			return match
		}

		var kept []string
		for _, part := range strings.Split(match[open+1:closing], ",") {
			part = strings.Trim(strings.TrimSpace(part), `"'`)
			if part != "" {
				kept = append(kept, part)
			}
		}
		if len(kept) >= 2 {
			kept = kept[:len(kept)-1]
		}
		kept = append(kept, fmt.Sprintf("%q", version))

		return "node-version: [" + strings.Join(kept, ", ") + "]"
	}
}

// ScriptRules builds the rule set for install scripts.
func ScriptRules(version string) []Rule {
	return []Rule{
		{Pattern: reRequiredVersion, Replacement: fmt.Sprintf(`required_version=%q`, version)},
	}
}

// ProjectConfigRules builds the rule set for a project_configs file.
// The version literal's form depends on the file's extension.
func ProjectConfigRules(relPath, version string) []Rule {
	switch filepath.Ext(relPath) {
	case ".toml":
		return []Rule{{Pattern: reTOMLVersion, Replacement: fmt.Sprintf(`version = %q`, version)}}
	case ".py":
		return []Rule{{Pattern: rePyDunder, Replacement: fmt.Sprintf(`__version__ = %q`, version)}}
	case ".json":
		return []Rule{{Pattern: reJSONVersion, Replacement: fmt.Sprintf(`"version": %q`, version)}}
	case ".go":
		return []Rule{{Pattern: reGoVersion, Replacement: fmt.Sprintf(`Version = %q`, version)}}
	default:
		return nil
	}
}
