// Package report provides the user-facing output sink for armature
// commands. Library code never prints directly; a Reporter is
// constructed once and passed into the components that produce
// human-readable progress, which keeps output capturable in tests.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Reporter receives human-readable progress and outcome messages.
type Reporter interface {
	// Info reports neutral progress.
	Info(format string, args ...any)
	// Success reports a completed action.
	Success(format string, args ...any)
	// Warn reports a degraded but non-fatal condition.
	Warn(format string, args ...any)
	// Failure reports a per-item error that did not abort the batch.
	Failure(format string, args ...any)
}

var (
	styleInfo    = lipgloss.NewStyle().SetString("•").Foreground(lipgloss.Color("#54A0FF"))
	styleSuccess = lipgloss.NewStyle().SetString("✓").Foreground(lipgloss.Color("#73F59F"))
	styleWarn    = lipgloss.NewStyle().SetString("⚠").Foreground(lipgloss.Color("#F4D03F"))
	styleFailure = lipgloss.NewStyle().SetString("✗").Foreground(lipgloss.Color("#FF8787"))
)

// Console is a Reporter that writes glyph-prefixed lines to a writer,
// styled unless plain mode (ui.color: false) is on.
type Console struct {
	w     io.Writer
	plain bool
}

// NewConsole creates a Reporter writing styled output to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// NewPlainConsole creates a Reporter writing unstyled output to w.
func NewPlainConsole(w io.Writer) *Console {
	return &Console{w: w, plain: true}
}

func (c *Console) line(style lipgloss.Style, glyph, format string, args ...any) {
	marker := style.String()
	if c.plain {
		marker = glyph
	}
	fmt.Fprintf(c.w, "%s %s\n", marker, fmt.Sprintf(format, args...))
}

func (c *Console) Info(format string, args ...any) {
	c.line(styleInfo, "•", format, args...)
}

func (c *Console) Success(format string, args ...any) {
	c.line(styleSuccess, "✓", format, args...)
}

func (c *Console) Warn(format string, args ...any) {
	c.line(styleWarn, "⚠", format, args...)
}

func (c *Console) Failure(format string, args ...any) {
	c.line(styleFailure, "✗", format, args...)
}

// Quiet is a Reporter that drops info and success messages but still
// surfaces warnings and failures. Used for --quiet.
type Quiet struct {
	inner Reporter
}

// NewQuiet wraps a Reporter, suppressing non-essential output.
func NewQuiet(inner Reporter) *Quiet {
	return &Quiet{inner: inner}
}

func (q *Quiet) Info(string, ...any)    {}
func (q *Quiet) Success(string, ...any) {}

func (q *Quiet) Warn(format string, args ...any) {
	q.inner.Warn(format, args...)
}

func (q *Quiet) Failure(format string, args ...any) {
	q.inner.Failure(format, args...)
}

// Recorder is a Reporter that captures messages for assertions in tests.
type Recorder struct {
	mu       sync.Mutex
	Infos    []string
	Oks      []string
	Warns    []string
	Failures []string
}

// NewRecorder creates an empty recording Reporter.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}

func (r *Recorder) Success(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Oks = append(r.Oks, fmt.Sprintf(format, args...))
}

func (r *Recorder) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warns = append(r.Warns, fmt.Sprintf(format, args...))
}

func (r *Recorder) Failure(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// All returns every recorded message in category groups, for debugging
// failed assertions.
func (r *Recorder) All() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return map[string][]string{
		"info":    append([]string(nil), r.Infos...),
		"success": append([]string(nil), r.Oks...),
		"warn":    append([]string(nil), r.Warns...),
		"failure": append([]string(nil), r.Failures...),
	}
}
