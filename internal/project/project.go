// Package project resolves the project directory a command operates on.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pair-labs/pair/internal/branding"
)

// rootMarkers identify a project root when walking up from the working
// directory.
var rootMarkers = []string{".git", branding.ProjectDir()}

// Resolve returns the absolute project path. An explicit path wins, then the
// PAIR_PROJECT environment variable, then the nearest ancestor of the working
// directory holding a .git or .ai entry, then the working directory itself.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return absolute(explicit)
	}
	if env := os.Getenv(branding.EnvVar("PROJECT")); env != "" {
		return absolute(env)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	if root, ok := FindRoot(cwd); ok {
		return root, nil
	}
	return cwd, nil
}

// FindRoot walks up from dir to the first directory containing one of the
// root markers.
func FindRoot(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func absolute(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", p, err)
	}
	return abs, nil
}
