// Package manager orchestrates version synchronization: it composes
// the registry, the version calculators, and the patch engine so that
// one logical update ("set python to 3.14") lands in every file that
// carries that version.
package manager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/armature-dev/armature/internal/log"
	"github.com/armature-dev/armature/internal/patch"
	"github.com/armature-dev/armature/internal/registry"
	"github.com/armature-dev/armature/internal/report"
	"github.com/armature-dev/armature/internal/vercalc"
)

// Component is a logical version the manager knows how to update.
type Component string

const (
	ComponentPython  Component = "python"
	ComponentNode    Component = "node"
	ComponentProject Component = "project"
)

// ParseComponent validates a user-supplied component name.
func ParseComponent(s string) (Component, error) {
	switch Component(s) {
	case ComponentPython, ComponentNode, ComponentProject:
		return Component(s), nil
	default:
		return "", fmt.Errorf("unknown component %q (must be python, node, or project)", s)
	}
}

// Shape returns the version shape the component's values follow.
func (c Component) Shape() vercalc.Shape {
	switch c {
	case ComponentPython:
		return vercalc.ShapeTwoPart
	case ComponentNode:
		return vercalc.ShapeInteger
	default:
		return vercalc.ShapeThreePart
	}
}

// label is the human-readable component name used in messages.
func (c Component) label() string {
	switch c {
	case ComponentPython:
		return "Python"
	case ComponentNode:
		return "Node.js"
	default:
		return "Project"
	}
}

// Update pairs a component with its new value for batch updates.
type Update struct {
	Component Component
	Value     string
}

// Summary aggregates per-file outcomes across one or more updates.
type Summary struct {
	Changed   int
	Unchanged int
	Missing   int
	Errors    int
}

func (s *Summary) record(o patch.Outcome) {
	switch o.Status {
	case patch.StatusChanged:
		s.Changed++
	case patch.StatusUnchanged:
		s.Unchanged++
	case patch.StatusMissing:
		s.Missing++
	case patch.StatusError:
		s.Errors++
	}
}

func (s *Summary) merge(other *Summary) {
	s.Changed += other.Changed
	s.Unchanged += other.Unchanged
	s.Missing += other.Missing
	s.Errors += other.Errors
}

// Manager synchronizes versions across a project. Output goes through
// the injected Reporter so callers control and capture it.
type Manager struct {
	reg    *registry.Registry
	rep    report.Reporter
	dryRun bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithDryRun makes every operation compute and report without
// persisting the registry or writing any file.
func WithDryRun() Option {
	return func(m *Manager) {
		m.dryRun = true
		m.reg.SetReadOnly(true)
	}
}

// New creates a Manager over a loaded registry.
func New(reg *registry.Registry, rep report.Reporter, opts ...Option) *Manager {
	m := &Manager{reg: reg, rep: rep}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// UpdateVersion sets a component to a new value: it persists the raw
// and derived registry keys, then patches every file in the pattern
// categories bound to the component. Per-file failures degrade to
// reported outcomes; only invalid input and registry persistence
// failures return an error.
func (m *Manager) UpdateVersion(component Component, value string) (*Summary, error) {
	if value == "" {
		return nil, fmt.Errorf("no value provided for %s", component)
	}

	m.rep.Info("Updating %s version to %s", component.label(), value)
	log.Info(log.CatManager, "Update requested", "component", component, "value", value)

	summary := &Summary{}
	switch component {
	case ComponentPython:
		targetID, err := vercalc.TargetID(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s version: %w", component.label(), err)
		}
		window, err := vercalc.SupportedWindow(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s version: %w", component.label(), err)
		}

		if err := m.reg.Set("python", value); err != nil {
			return nil, err
		}
		if err := m.reg.Set("python_target", targetID); err != nil {
			return nil, err
		}

		rules := patch.PythonConfigRules(value, targetID, window)
		m.patchCategory(summary, "python_configs", rules)
		m.patchCategory(summary, "scripts", patch.ScriptRules(value))
		m.patchCategory(summary, "templates", rules)

	case ComponentNode:
		if err := m.reg.Set("node", value); err != nil {
			return nil, err
		}
		rules := patch.NodeConfigRules(value)
		m.patchCategory(summary, "typescript_configs", rules)
		m.patchCategory(summary, "templates", rules)

	case ComponentProject:
		if err := m.reg.Set("project", value); err != nil {
			return nil, err
		}
		for _, rel := range m.reg.Patterns("project_configs") {
			m.patchFile(summary, rel, patch.ProjectConfigRules(rel, value))
		}

	default:
		return nil, fmt.Errorf("unknown component %q", component)
	}

	m.rep.Success("%s version updated to %s (%d changed, %d unchanged, %d missing, %d errors)",
		component.label(), value, summary.Changed, summary.Unchanged, summary.Missing, summary.Errors)
	return summary, nil
}

// UpdateAll applies each update in order, then validates the result.
// Consistency warnings are reported but never fail the batch.
func (m *Manager) UpdateAll(updates []Update) (*Summary, error) {
	total := &Summary{}
	for _, u := range updates {
		summary, err := m.UpdateVersion(u.Component, u.Value)
		if err != nil {
			return total, err
		}
		total.merge(summary)
	}

	if warnings := m.ValidateVersions(); len(warnings) > 0 {
		m.rep.Warn("Validation warnings:")
		for _, w := range warnings {
			m.rep.Warn("  - %s", w)
		}
	} else {
		m.rep.Success("All versions updated successfully")
	}
	return total, nil
}

// ValidateVersions compares each component against its configured
// minimum. Non-numeric stored values produce a warning entry, never
// an error.
func (m *Manager) ValidateVersions() []string {
	var warnings []string
	for _, c := range []Component{ComponentPython, ComponentNode, ComponentProject} {
		current := m.reg.Get(string(c))
		minimum := m.reg.Get(string(c) + "_min")
		if current == "" || minimum == "" {
			continue
		}

		cmp, err := vercalc.Compare(current, minimum)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid %s version format", c.label()))
			continue
		}
		if cmp < 0 {
			warnings = append(warnings,
				fmt.Sprintf("%s version %s is below minimum %s", c.label(), current, minimum))
		}
	}
	return warnings
}

// ReportValidation runs ValidateVersions and prints every finding
// through the Reporter so an operator sees which check failed, not
// just a count. Returns the warnings for the caller's exit decision.
func (m *Manager) ReportValidation() []string {
	warnings := m.ValidateVersions()
	if len(warnings) == 0 {
		m.rep.Success("All version checks passed")
		return nil
	}
	for _, w := range warnings {
		m.rep.Warn("%s", w)
	}
	return warnings
}

// BumpVersion computes the next version for a component and applies it
// through UpdateVersion. Returns the new value for display.
func (m *Manager) BumpVersion(component Component, kind vercalc.BumpKind) (string, error) {
	current := m.reg.Get(string(component))
	if current == "" {
		return "", fmt.Errorf("no current version found for %s", component)
	}

	next, err := vercalc.Bump(current, kind, component.Shape())
	if err != nil {
		return "", err
	}

	if _, err := m.UpdateVersion(component, next); err != nil {
		return "", err
	}
	return next, nil
}

// patchCategory applies one rule set to every file in a pattern
// category.
func (m *Manager) patchCategory(summary *Summary, category string, rules []patch.Rule) {
	for _, rel := range m.reg.Patterns(category) {
		m.patchFile(summary, rel, rules)
	}
}

// patchFile runs the patch engine (or a preview in dry-run mode) on a
// single file and reports the outcome.
func (m *Manager) patchFile(summary *Summary, rel string, rules []patch.Rule) {
	if len(rules) == 0 {
		return
	}

	var outcome patch.Outcome
	if m.dryRun {
		var diff string
		diff, outcome = patch.Preview(m.reg.Root(), rel, rules)
		if outcome.Status == patch.StatusChanged {
			m.rep.Info("Would update %s:\n%s", rel, strings.TrimRight(diff, "\n"))
		}
	} else {
		outcome = patch.Apply(m.reg.Root(), rel, rules)
	}
	summary.record(outcome)

	switch outcome.Status {
	case patch.StatusChanged:
		if !m.dryRun {
			m.rep.Success("Updated %s", rel)
		}
	case patch.StatusUnchanged:
		m.rep.Info("No changes needed in %s", rel)
	case patch.StatusMissing:
		m.rep.Warn("File not found: %s", rel)
	case patch.StatusError:
		m.rep.Failure("Error updating %s: %v", rel, outcome.Err)
	}
}

// versionGroups orders the show table: known keys first, grouped by
// component, then anything else the registry carries.
var versionGroups = []struct {
	name string
	keys []string
}{
	{"Project", []string{"project", "project_min"}},
	{"Python", []string{"python", "python_min", "python_target"}},
	{"Node.js", []string{"node", "node_min"}},
}

// CurrentVersions returns the registry contents as ordered rows of
// (component, version) for display.
func (m *Manager) CurrentVersions() [][2]string {
	var rows [][2]string
	seen := make(map[string]bool)

	for _, group := range versionGroups {
		for _, key := range group.keys {
			if v := m.reg.Get(key); v != "" {
				rows = append(rows, [2]string{displayName(key), v})
				seen[key] = true
			}
		}
	}

	var rest []string
	for _, key := range m.reg.Keys() {
		if !seen[key] && m.reg.Get(key) != "" {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		rows = append(rows, [2]string{displayName(key), m.reg.Get(key)})
	}
	return rows
}

// displayName renders a registry key for humans: "python_min" becomes
// "Python Min".
func displayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
