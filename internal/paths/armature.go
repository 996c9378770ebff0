// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveConfigDir resolves the .armature directory path from user input.
// It normalizes the input (accepting either project dir or .armature dir),
// appends .armature if needed, and follows redirect files for git worktrees.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.armature"
//   - "/path/to/project/.armature" -> "/path/to/project/.armature"
//   - "" -> "./.armature"
//
// Redirect handling:
//   - If .armature/redirect exists, follows it to the actual .armature location
//   - This supports git worktrees where every worktree shares the main
//     worktree's registry
func ResolveConfigDir(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	// If path already ends with .armature, use it directly
	if filepath.Base(path) == ".armature" {
		return followRedirect(path)
	}

	return followRedirect(filepath.Join(path, ".armature"))
}

// followRedirect checks for a redirect file and follows it if present.
// Redirect files are used by git worktrees to point at the main worktree's
// .armature directory.
func followRedirect(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, "redirect")) //nolint:gosec // redirect path is within .armature dir
	if err != nil {
		return dir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}

	// Relative targets resolve against the redirecting directory.
	return filepath.Clean(filepath.Join(dir, target))
}
