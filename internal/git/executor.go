// Package git shells out to the git binary for the small set of
// operations scaffolding needs.
package git

// Executor defines the interface for git operations on a directory.
// This abstraction allows for easy testing with mock implementations.
type Executor interface {
	// IsRepo reports whether the directory is inside a git repository.
	IsRepo() bool

	// InitRepo initializes a new repository in the directory.
	InitRepo() error

	// AddAll stages every file in the directory.
	AddAll() error

	// Commit records the staged files with the given message.
	Commit(message string) error

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch() (string, error)
}
