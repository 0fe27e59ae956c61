// Package version parses and compares the CLI's semantic version, which is
// injected at build time.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Dev is the version reported by builds without ldflags.
const Dev = "dev"

// Parse strips a leading "v" and parses the version string.
func Parse(v string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(v, "v"))
}

// Normalize returns v in canonical "MAJOR.MINOR.PATCH[-PRE][+META]" form,
// or v unchanged when it is not a semantic version (e.g., "dev").
func Normalize(v string) string {
	sv, err := Parse(v)
	if err != nil {
		return v
	}
	return sv.String()
}

// Satisfies reports whether v meets the constraint (e.g., ">= 1.2, < 2").
// Development builds satisfy every constraint.
func Satisfies(v, constraint string) (bool, error) {
	if v == Dev {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	sv, err := Parse(v)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", v, err)
	}
	return c.Check(sv), nil
}
