// Package patch rewrites version literals inside project files. It
// applies ordered regex substitution rules to a file's text and writes
// the result back only when something actually changed, reporting a
// per-file outcome instead of failing the batch.
package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/armature-dev/armature/internal/log"
)

// Rule is one ordered substitution: every match of Pattern in the file
// is replaced with Replacement, taken verbatim ($ has no meaning).
// Rules that match nothing are no-ops. When Rewrite is set it takes
// precedence and receives each match; its result is inserted as-is.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Rewrite     func(match string) string
}

// Status classifies the result of patching one file.
type Status int

const (
	StatusChanged Status = iota
	StatusUnchanged
	StatusMissing
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusUnchanged:
		return "unchanged"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the per-file result of an Apply or Preview call.
type Outcome struct {
	Path   string
	Status Status
	Err    error
}

// Apply runs every rule in order against the file at root/relPath and
// writes the result back in place when the content changed. Failures
// are captured in the Outcome; Apply never aborts a batch.
func Apply(root, relPath string, rules []Rule) Outcome {
	updated, outcome := transform(root, relPath, rules)
	if outcome.Status != StatusChanged {
		return outcome
	}

	path := filepath.Join(root, relPath)
	info, err := os.Stat(path)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(updated), mode); err != nil {
		log.ErrorErr(log.CatPatch, "Write failed", err, "path", relPath)
		return Outcome{Path: relPath, Status: StatusError, Err: fmt.Errorf("writing %s: %w", relPath, err)}
	}

	log.Info(log.CatPatch, "File patched", "path", relPath, "rules", len(rules))
	return outcome
}

// Preview runs the rules without writing and returns a line diff of
// the would-be change. The diff is empty for non-changed outcomes.
func Preview(root, relPath string, rules []Rule) (string, Outcome) {
	updated, outcome := transform(root, relPath, rules)
	if outcome.Status != StatusChanged {
		return "", outcome
	}

	original, err := os.ReadFile(filepath.Join(root, relPath)) //nolint:gosec // G304: path is rooted at the project root
	if err != nil {
		return "", Outcome{Path: relPath, Status: StatusError, Err: fmt.Errorf("reading %s: %w", relPath, err)}
	}

	return lineDiff(string(original), updated), outcome
}

// transform reads the file and applies the rules to its content,
// returning the updated text and a status that does not yet reflect
// any write.
func transform(root, relPath string, rules []Rule) (string, Outcome) {
	path := filepath.Join(root, relPath)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			log.Warn(log.CatPatch, "File not found", "path", relPath)
			return "", Outcome{Path: relPath, Status: StatusMissing}
		}
		return "", Outcome{Path: relPath, Status: StatusError, Err: fmt.Errorf("checking %s: %w", relPath, err)}
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is rooted at the project root
	if err != nil {
		return "", Outcome{Path: relPath, Status: StatusError, Err: fmt.Errorf("reading %s: %w", relPath, err)}
	}

	original := string(data)
	content := original
	for _, rule := range rules {
		if rule.Rewrite != nil {
			content = rule.Pattern.ReplaceAllStringFunc(content, rule.Rewrite)
			continue
		}
		// Literal replacement: a version value containing $ must land
		// in the file verbatim, never as a group reference.
		content = rule.Pattern.ReplaceAllLiteralString(content, rule.Replacement)
	}

	if content == original {
		return content, Outcome{Path: relPath, Status: StatusUnchanged}
	}
	return content, Outcome{Path: relPath, Status: StatusChanged}
}

// lineDiff renders a minimal +/- line diff between two texts.
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffEqual:
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(d.Text, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
