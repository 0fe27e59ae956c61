package generator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/pair-labs/pair/internal/agents"
	"github.com/pair-labs/pair/internal/fsutil"
	"github.com/pair-labs/pair/internal/templates"
)

func testDefaults() templates.Source {
	return templates.Source{
		FS: fstest.MapFS{
			"rules/default.md":       {Data: []byte("default rule")},
			"agents/cursor/mcp.json": {Data: []byte("{}")},
			"README.md":              {Data: []byte("readme")},
		},
		Location: "test-defaults",
	}
}

func newGenerator() *Generator {
	return New(fsutil.NewOS(nil), testDefaults(), nil)
}

func agent(t *testing.T, name string) *agents.Agent {
	t.Helper()
	r, err := agents.Default()
	if err != nil {
		t.Fatalf("agents.Default() error = %v", err)
	}
	a, ok := r.Get(name)
	if !ok {
		t.Fatalf("agent %s not registered", name)
	}
	return a
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func listFiles(t *testing.T, root string) string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(files)
	return strings.Join(files, ",")
}

func TestGenerate_FromProjectAI(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".ai", "rules", "general.md"), "general")
	writeFile(t, filepath.Join(project, ".ai", "rules", "php", "laravel.md"), "laravel")
	writeFile(t, filepath.Join(project, ".ai", "rules", "_draft.md"), "draft")
	writeFile(t, filepath.Join(project, ".ai", "agents", "junie", "x.md"), "junie only")

	res, err := newGenerator().Generate(agent(t, agents.Cursor), project)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.Source != SourceProject {
		t.Errorf("Source = %q, want %q", res.Source, SourceProject)
	}
	if res.Dest != filepath.Join(project, ".cursor") {
		t.Errorf("Dest = %q", res.Dest)
	}

	got := listFiles(t, filepath.Join(project, ".cursor"))
	if got != "rules/general.mdc,rules/php/laravel.mdc" {
		t.Errorf("files = %s", got)
	}

	data, err := os.ReadFile(filepath.Join(project, ".cursor", "rules", "php", "laravel.mdc"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "laravel" {
		t.Errorf("content = %q, want %q", data, "laravel")
	}
}

func TestGenerate_RemovesStaleFiles(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".ai", "rules", "general.md"), "general")
	writeFile(t, filepath.Join(project, ".junie", "stale.md"), "old")
	writeFile(t, filepath.Join(project, ".junie", "guidelines", "removed.md"), "old")

	if _, err := newGenerator().Generate(agent(t, agents.Junie), project); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if got := listFiles(t, filepath.Join(project, ".junie")); got != "guidelines/general.md" {
		t.Errorf("files = %s, want only guidelines/general.md", got)
	}
}

func TestGenerate_FallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, project string)
	}{
		{"missing .ai", func(t *testing.T, project string) {}},
		{"empty .ai", func(t *testing.T, project string) {
			if err := os.Mkdir(filepath.Join(project, ".ai"), 0o755); err != nil {
				t.Fatal(err)
			}
		}},
		{".ai with only OS leftovers", func(t *testing.T, project string) {
			writeFile(t, filepath.Join(project, ".ai", ".DS_Store"), "junk")
			writeFile(t, filepath.Join(project, ".ai", ".git", "HEAD"), "ref")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := t.TempDir()
			tt.setup(t, project)

			res, err := newGenerator().Generate(agent(t, agents.Cursor), project)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if res.Source != SourceDefaults {
				t.Errorf("Source = %q, want %q", res.Source, SourceDefaults)
			}
			if got := listFiles(t, filepath.Join(project, ".cursor")); got != "mcp.json,rules/default.mdc" {
				t.Errorf("files = %s", got)
			}
		})
	}
}

func TestGenerate_NoMatchingFilesLeavesEmptyFolder(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".ai", "notes.txt"), "n")

	res, err := newGenerator().Generate(agent(t, agents.Copilot), project)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Files) != 0 {
		t.Errorf("Files = %v, want none", res.Files)
	}
	info, err := os.Stat(filepath.Join(project, ".copilot"))
	if err != nil || !info.IsDir() {
		t.Fatal("expected empty .copilot directory")
	}
}

func TestGenerate_BaseFolderIsFile(t *testing.T) {
	project := t.TempDir()
	// A regular file in place of the folder is replaced like any stale output.
	writeFile(t, filepath.Join(project, ".cursor"), "not a dir")

	if _, err := newGenerator().Generate(agent(t, agents.Cursor), project); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(project, ".cursor"))
	if err != nil || !info.IsDir() {
		t.Fatal("expected .cursor to be a directory")
	}
}

func TestGenerateAll(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".ai", "rules", "general.md"), "general")

	r, err := agents.Default()
	if err != nil {
		t.Fatal(err)
	}

	results, err := newGenerator().GenerateAll(r.All(), project)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	want := map[string]string{
		".copilot": "instructions/general.instructions.md",
		".cursor":  "rules/general.mdc",
		".junie":   "guidelines/general.md",
	}
	for folder, files := range want {
		if got := listFiles(t, filepath.Join(project, folder)); got != files {
			t.Errorf("%s files = %s, want %s", folder, got, files)
		}
	}
}
