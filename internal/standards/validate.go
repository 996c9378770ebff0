package standards

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/armature-dev/armature/internal/log"
)

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Issue is one finding from standards validation.
type Issue struct {
	Severity Severity
	Message  string
	Path     string
	Line     int
	RuleID   string
}

// Result aggregates the findings for one project.
type Result struct {
	Compliant bool
	Issues    []Issue
	Score     float64
}

// Violations returns the error-severity issues.
func (r *Result) Violations() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity issues.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// sourceExtensions maps a language to the file extensions its
// formatting rules scan.
var sourceExtensions = map[string][]string{
	"python":     {".py"},
	"typescript": {".ts", ".tsx"},
	"go":         {".go"},
	"rust":       {".rs"},
}

// skipDirs are directory names excluded from source scans.
var skipDirs = map[string]bool{
	".git":          true,
	".venv":         true,
	"venv":          true,
	"node_modules":  true,
	"dist":          true,
	"build":         true,
	"__pycache__":   true,
	".tox":          true,
	".pytest_cache": true,
	".mypy_cache":   true,
	".ruff_cache":   true,
}

// ValidateProject checks a project against the standards for every
// detected language. Languages without a loadable standard degrade to
// a warning rather than failing the run.
func (s *Store) ValidateProject(root string) (*Result, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("project path %s: %w", root, err)
	}

	result := &Result{}
	for _, language := range DetectLanguages(root) {
		std, err := s.Load(language)
		if err != nil {
			log.Warn(log.CatStandards, "Validation skipped", "language", language, "error", err)
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Failed to validate %s: %v", language, err),
				RuleID:   "standards.unavailable",
			})
			continue
		}
		s.validateLanguage(root, std, result)
	}

	violations := len(result.Violations())
	warnings := len(result.Warnings())
	result.Compliant = violations == 0
	result.Score = 100.0 - float64(violations)*10 - float64(warnings)*2
	if result.Score < 0 {
		result.Score = 0
	}

	log.Info(log.CatStandards, "Validation complete", "root", root,
		"violations", violations, "warnings", warnings, "score", result.Score)
	return result, nil
}

func (s *Store) validateLanguage(root string, std *Standard, result *Result) {
	checkStructure(root, std, result)
	checkSourceFiles(root, std, result)
}

// checkStructure verifies required directories and files exist.
func checkStructure(root string, std *Standard, result *Result) {
	for _, dir := range std.Rules.FileStructure.RequiredDirectories {
		if _, err := os.Stat(filepath.Join(root, dir)); err != nil {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("Missing required directory: %s", dir),
				RuleID:   "file_structure.missing_directory",
			})
		}
	}
	for _, file := range std.Rules.FileStructure.RequiredFiles {
		if _, err := os.Stat(filepath.Join(root, file)); err != nil {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("Missing required file: %s", file),
				RuleID:   "file_structure.missing_file",
			})
		}
	}
}

// checkSourceFiles walks the language's source files applying naming
// and formatting rules.
func checkSourceFiles(root string, std *Standard, result *Result) {
	exts := sourceExtensions[std.Language]
	if len(exts) == 0 {
		return
	}

	var namePattern *regexp.Regexp
	if std.Rules.Naming.FilePattern != "" {
		var err error
		namePattern, err = regexp.Compile(std.Rules.Naming.FilePattern)
		if err != nil {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Invalid naming pattern for %s: %v", std.Language, err),
				RuleID:   "naming.invalid_pattern",
			})
		}
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExt(path, exts) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if namePattern != nil {
			base := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if !namePattern.MatchString(base) {
				result.Issues = append(result.Issues, Issue{
					Severity: SeverityError,
					Message:  fmt.Sprintf("File name %q does not match pattern %s", d.Name(), std.Rules.Naming.FilePattern),
					Path:     rel,
					RuleID:   "naming.file_pattern",
				})
			}
		}

		checkFormatting(path, rel, std, result)
		return nil
	})
}

// checkFormatting applies line-level formatting rules to one file.
func checkFormatting(path, rel string, std *Standard, result *Result) {
	maxLen := std.Rules.Formatting.MaxLineLength
	noTrailing := std.Rules.Formatting.TrailingWhitespace
	if maxLen == 0 && !noTrailing {
		return
	}

	f, err := os.Open(path) //nolint:gosec // G304: path comes from walking the project root
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Unreadable file: %v", err),
			Path:     rel,
			RuleID:   "formatting.unreadable",
		})
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if maxLen > 0 && len(line) > maxLen {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Line exceeds %d characters (%d)", maxLen, len(line)),
				Path:     rel,
				Line:     lineNo,
				RuleID:   "formatting.line_length",
			})
		}
		if noTrailing && line != strings.TrimRight(line, " \t") {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityWarning,
				Message:  "Trailing whitespace",
				Path:     rel,
				Line:     lineNo,
				RuleID:   "formatting.trailing_whitespace",
			})
		}
	}
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
