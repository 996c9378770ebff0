// Package vercalc implements version arithmetic for the version manager:
// semantic bumps for the three version shapes armature tracks, target
// identifier derivation, supported-version windows for CI matrices, and
// numeric version comparison.
//
// All functions are pure. Malformed input is always a returned error,
// never a silent default.
package vercalc

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape identifies the structure of a version string.
type Shape int

const (
	// ShapeThreePart is a full semantic version, e.g. "0.2.1".
	ShapeThreePart Shape = iota
	// ShapeTwoPart is a runtime major.minor pair, e.g. "3.12".
	ShapeTwoPart
	// ShapeInteger is a bare runtime major, e.g. "24".
	ShapeInteger
)

func (s Shape) String() string {
	switch s {
	case ShapeThreePart:
		return "three-part"
	case ShapeTwoPart:
		return "two-part"
	case ShapeInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// BumpKind selects which component of a version to increment.
type BumpKind string

const (
	BumpPatch BumpKind = "patch"
	BumpMinor BumpKind = "minor"
	BumpMajor BumpKind = "major"
)

// ParseBumpKind validates a user-supplied bump kind.
func ParseBumpKind(s string) (BumpKind, error) {
	switch BumpKind(s) {
	case BumpPatch, BumpMinor, BumpMajor:
		return BumpKind(s), nil
	default:
		return "", fmt.Errorf("invalid bump kind %q (must be patch, minor, or major)", s)
	}
}

// integerMajorStep is the jump applied to integer-shaped versions on a
// major bump, matching the runtime's fixed LTS release cadence.
const integerMajorStep = 6

// Bump computes the next version for the given shape and kind.
//
//	three-part: patch X.Y.(Z+1)  minor X.(Y+1).0  major (X+1).0.0
//	two-part:   patch X.(Y+1)    minor (X+1).0    major (X+1).0
//	integer:    patch n+1        minor n+2        major n+6
func Bump(current string, kind BumpKind, shape Shape) (string, error) {
	switch shape {
	case ShapeThreePart:
		major, minor, patch, err := parseThreePart(current)
		if err != nil {
			return "", err
		}
		switch kind {
		case BumpPatch:
			return fmt.Sprintf("%d.%d.%d", major, minor, patch+1), nil
		case BumpMinor:
			return fmt.Sprintf("%d.%d.0", major, minor+1), nil
		case BumpMajor:
			return fmt.Sprintf("%d.0.0", major+1), nil
		}

	case ShapeTwoPart:
		major, minor, err := parseTwoPart(current)
		if err != nil {
			return "", err
		}
		switch kind {
		case BumpPatch:
			return fmt.Sprintf("%d.%d", major, minor+1), nil
		case BumpMinor, BumpMajor:
			return fmt.Sprintf("%d.0", major+1), nil
		}

	case ShapeInteger:
		n, err := strconv.Atoi(current)
		if err != nil {
			return "", fmt.Errorf("invalid integer version %q", current)
		}
		switch kind {
		case BumpPatch:
			return strconv.Itoa(n + 1), nil
		case BumpMinor:
			return strconv.Itoa(n + 2), nil
		case BumpMajor:
			return strconv.Itoa(n + integerMajorStep), nil
		}
	}

	return "", fmt.Errorf("invalid bump kind %q", kind)
}

// TargetID derives a compact target identifier from a two-part runtime
// version: "3.14" becomes "py314".
func TargetID(version string) (string, error) {
	if _, _, err := parseTwoPart(version); err != nil {
		return "", err
	}
	return "py" + strings.ReplaceAll(version, ".", ""), nil
}

// borrowedMinor is the minor assumed for the previous major when a
// window decrement crosses below zero. The real release history has no
// fixed answer here; 11 matches the runtime's last pre-rollover minor.
const borrowedMinor = 11

// SupportedWindow computes the three most recent minor versions ending
// at the given two-part version, sorted ascending by (major, minor).
// "3.14" yields ["3.12", "3.13", "3.14"].
//
// When the minor would cross below zero the major is decremented and
// the minor resets to borrowedMinor.
func SupportedWindow(version string) ([]string, error) {
	major, minor, err := parseTwoPart(version)
	if err != nil {
		return nil, err
	}

	window := make([]string, 0, 3)
	for offset := 2; offset >= 0; offset-- {
		m, n := major, minor-offset
		if n < 0 {
			m--
			n = borrowedMinor + n + 1
			if m < 0 || n < 0 {
				return nil, fmt.Errorf("version %q too low for a supported window", version)
			}
		}
		window = append(window, fmt.Sprintf("%d.%d", m, n))
	}
	return window, nil
}

// Compare compares two version strings numerically, component by
// component. Returns -1, 0, or 1. A shorter version with equal leading
// components sorts first ("3.12" < "3.12.1").
func Compare(a, b string) (int, error) {
	as, err := parseComponents(a)
	if err != nil {
		return 0, err
	}
	bs, err := parseComponents(b)
	if err != nil {
		return 0, err
	}

	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			if as[i] < bs[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	switch {
	case len(as) < len(bs):
		return -1, nil
	case len(as) > len(bs):
		return 1, nil
	}
	return 0, nil
}

func parseThreePart(s string) (major, minor, patch int, err error) {
	parts, err := parseComponents(s)
	if err != nil {
		return 0, 0, 0, err
	}
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid three-part version %q (want X.Y.Z)", s)
	}
	return parts[0], parts[1], parts[2], nil
}

func parseTwoPart(s string) (major, minor int, err error) {
	parts, err := parseComponents(s)
	if err != nil {
		return 0, 0, err
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid two-part version %q (want X.Y)", s)
	}
	return parts[0], parts[1], nil
}

func parseComponents(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("invalid version %q", s)
	}
	raw := strings.Split(s, ".")
	parts := make([]int, len(raw))
	for i, r := range raw {
		n, err := strconv.Atoi(r)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version %q: component %q is not a number", s, r)
		}
		parts[i] = n
	}
	return parts, nil
}
