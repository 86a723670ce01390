// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Mode selects which variant of the book a render pass produces. It is
// threaded through the render call tree as an explicit parameter; the two
// build passes never share a Mode value.
type Mode string

const (
	// ModeShowProblems renders problem statements alongside solutions.
	ModeShowProblems Mode = "show-problems"

	// ModeHideProblems omits problem statements, keeping titles and solutions.
	ModeHideProblems Mode = "hide-problems"
)

// Modes returns the two build modes in the fixed order the orchestrator
// runs them. The order is not semantically significant but must be stable
// so output naming is reproducible.
func Modes() []Mode {
	return []Mode{ModeShowProblems, ModeHideProblems}
}

// Valid reports whether m is one of the two defined modes.
func (m Mode) Valid() bool {
	return m == ModeShowProblems || m == ModeHideProblems
}

// Label returns the fixed variant label displayed on the title page.
// The two labels are never equal.
func (m Mode) Label() string {
	switch m {
	case ModeShowProblems:
		return "With Problem Statements"
	case ModeHideProblems:
		return "Solutions Only"
	}
	return ""
}

// ArtifactSuffix returns the fixed suffix appended to the output base name
// for this mode. One suffix per mode, never reused across modes.
func (m Mode) ArtifactSuffix() string {
	switch m {
	case ModeShowProblems:
		return "_with_problems"
	case ModeHideProblems:
		return "_solutions_only"
	}
	return ""
}

// ParseMode converts a user-supplied variant name into a Mode. It accepts
// the canonical mode names and the common aliases used on the CLI.
func ParseMode(s string) (Mode, error) {
	switch s {
	case string(ModeShowProblems), "full", "problems", "with-problems":
		return ModeShowProblems, nil
	case string(ModeHideProblems), "solutions-only", "solutions":
		return ModeHideProblems, nil
	}
	return "", fmt.Errorf("invalid mode %q: use %s or %s", s, ModeShowProblems, ModeHideProblems)
}
