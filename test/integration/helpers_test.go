//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pair-labs/pair/internal/agents"
	"github.com/pair-labs/pair/internal/fsutil"
	"github.com/pair-labs/pair/internal/generator"
	"github.com/pair-labs/pair/internal/installer"
	"github.com/pair-labs/pair/internal/templates"
)

// testEnv holds an isolated home and project directory plus the services
// the commands build.
type testEnv struct {
	HomeDir    string
	ProjectDir string

	Installer *installer.Installer
	Generator *generator.Generator
	Registry  *agents.Registry
}

// setupTestEnv creates isolated temp directories and points HOME and the
// PAIR_* variables at them so nothing outside the test is touched.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)
	t.Setenv("PAIR_PROJECT", "")
	t.Setenv("PAIR_DEFAULTS_DIR", "")

	registry, err := agents.Default()
	if err != nil {
		t.Fatalf("loading agents: %v", err)
	}
	fs := fsutil.NewOS(nil)
	defaults := templates.Bundled()

	env.Registry = registry
	env.Installer = installer.New(fs, defaults, registry, nil)
	env.Generator = generator.New(fs, defaults, nil)
	return env
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
