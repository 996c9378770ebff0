package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Git-specific errors.
var (
	// ErrNotGitRepo indicates the directory is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrNothingToCommit indicates the index has no staged changes.
	ErrNothingToCommit = errors.New("nothing to commit")
)

// Compile-time check that RealExecutor implements Executor.
var _ Executor = (*RealExecutor)(nil)

// RealExecutor implements Executor by executing actual git commands.
type RealExecutor struct {
	workDir string
}

// NewRealExecutor creates a new RealExecutor rooted at workDir.
func NewRealExecutor(workDir string) *RealExecutor {
	return &RealExecutor{workDir: workDir}
}

// runGit executes a git command and returns an error if it fails.
func (e *RealExecutor) runGit(args ...string) error {
	_, err := e.runGitOutput(args...)
	return err
}

// runGitOutput executes a git command and returns stdout and any error.
func (e *RealExecutor) runGitOutput(args ...string) (string, error) {
	//nolint:gosec // G204: args come from controlled sources
	cmd := exec.Command("git", args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", parseGitError(stderrStr, err)
		}
		// "nothing to commit" lands on stdout, not stderr
		if strings.Contains(strings.ToLower(stdout.String()), "nothing to commit") {
			return "", fmt.Errorf("%w: %s", ErrNothingToCommit, strings.TrimSpace(stdout.String()))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// parseGitError converts git stderr messages to specific error types.
func parseGitError(stderr string, originalErr error) error {
	stderrLower := strings.ToLower(stderr)

	if strings.Contains(stderrLower, "not a git repository") {
		return fmt.Errorf("%w: %s", ErrNotGitRepo, stderr)
	}
	if strings.Contains(stderrLower, "nothing to commit") {
		return fmt.Errorf("%w: %s", ErrNothingToCommit, stderr)
	}

	return fmt.Errorf("git error: %s: %w", stderr, originalErr)
}

// IsRepo reports whether workDir is inside a git repository.
func (e *RealExecutor) IsRepo() bool {
	err := e.runGit("rev-parse", "--git-dir")
	return err == nil
}

// InitRepo initializes a new repository in workDir.
func (e *RealExecutor) InitRepo() error {
	return e.runGit("init")
}

// AddAll stages every file in workDir.
func (e *RealExecutor) AddAll() error {
	return e.runGit("add", "-A")
}

// Commit records the staged files with the given message.
func (e *RealExecutor) Commit(message string) error {
	return e.runGit("commit", "-m", message)
}

// CurrentBranch returns the name of the checked-out branch.
func (e *RealExecutor) CurrentBranch() (string, error) {
	// git branch --show-current (git 2.22+)
	output, err := e.runGitOutput("branch", "--show-current")
	if err == nil && output != "" {
		return output, nil
	}

	// Fallback: parse symbolic-ref
	output, err = e.runGitOutput("symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}
