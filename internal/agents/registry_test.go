package agents

import (
	"strings"
	"testing"
)

func mustDefault(t *testing.T) *Registry {
	t.Helper()
	r, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return r
}

func agentNames(agents []*Agent) string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name()
	}
	return strings.Join(names, ",")
}

func TestDefault_EmbeddedRegistryIsValid(t *testing.T) {
	result, err := Validate(rawRegistry)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("issue: %s", issue)
		}
	}
	mustDefault(t)
}

func TestAll_RegistrationOrder(t *testing.T) {
	r := mustDefault(t)

	if got := agentNames(r.All()); got != "copilot,cursor,junie" {
		t.Errorf("All() = %s, want copilot,cursor,junie", got)
	}
	if got := strings.Join(r.Names(), ","); got != "copilot,cursor,junie" {
		t.Errorf("Names() = %s", got)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	r := mustDefault(t)
	all := r.All()
	all[0] = nil

	if r.All()[0] == nil {
		t.Error("mutating All() result changed the registry")
	}
}

func TestBaseFolders(t *testing.T) {
	r := mustDefault(t)
	want := map[string]string{
		Copilot: ".copilot",
		Cursor:  ".cursor",
		Junie:   ".junie",
	}
	for name, folder := range want {
		a, ok := r.Get(name)
		if !ok {
			t.Fatalf("Get(%q) not found", name)
		}
		if a.BaseFolder() != folder {
			t.Errorf("%s BaseFolder() = %q, want %q", name, a.BaseFolder(), folder)
		}
	}
}

func TestOnly(t *testing.T) {
	r := mustDefault(t)

	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"single", []string{"cursor"}, "cursor"},
		{"registry order kept", []string{"junie", "copilot"}, "copilot,junie"},
		{"unknown ignored", []string{"windsurf", "junie"}, "junie"},
		{"only unknown", []string{"windsurf"}, ""},
		{"duplicates collapse", []string{"cursor", "cursor"}, "cursor"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agentNames(r.Only(tt.input)); got != tt.want {
				t.Errorf("Only(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	r := mustDefault(t)

	if got := agentNames(r.Select(nil)); got != "copilot,cursor,junie" {
		t.Errorf("Select(nil) = %s", got)
	}
	if got := agentNames(r.Select([]string{"copilot"})); got != "copilot" {
		t.Errorf("Select(copilot) = %s", got)
	}
	if got := agentNames(r.Select([]string{"nope"})); got != "" {
		t.Errorf("Select(nope) = %s, want empty", got)
	}
}

func TestGet_Unknown(t *testing.T) {
	r := mustDefault(t)
	if _, ok := r.Get("windsurf"); ok {
		t.Error("Get(windsurf) should not be found")
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing agents",
			yaml: "schema_version: 1.0.0\n",
			want: "invalid agent registry",
		},
		{
			name: "base folder without dot",
			yaml: `schema_version: 1.0.0
agents:
  - name: x
    base_folder: x
    rules:
      - match: "**"
        target: "{{.Rel}}"
`,
			want: "invalid agent registry",
		},
		{
			name: "rule without target or skip",
			yaml: `schema_version: 1.0.0
agents:
  - name: x
    base_folder: .x
    rules:
      - match: "**"
`,
			want: "invalid agent registry",
		},
		{
			name: "unsupported schema version",
			yaml: `schema_version: 2.0.0
agents:
  - name: x
    base_folder: .x
    rules:
      - match: "**"
        target: "{{.Rel}}"
`,
			want: "not supported",
		},
		{
			name: "bad schema version",
			yaml: `schema_version: latest
agents:
  - name: x
    base_folder: .x
    rules:
      - match: "**"
        target: "{{.Rel}}"
`,
			want: "schema_version",
		},
		{
			name: "duplicate name",
			yaml: `schema_version: 1.0.0
agents:
  - name: x
    base_folder: .x
    rules: [{match: "**", target: "{{.Rel}}"}]
  - name: x
    base_folder: .y
    rules: [{match: "**", target: "{{.Rel}}"}]
`,
			want: "duplicate agent name",
		},
		{
			name: "shared base folder",
			yaml: `schema_version: 1.0.0
agents:
  - name: x
    base_folder: .x
    rules: [{match: "**", target: "{{.Rel}}"}]
  - name: y
    base_folder: .x
    rules: [{match: "**", target: "{{.Rel}}"}]
`,
			want: "share base folder",
		},
		{
			name: "invalid glob",
			yaml: `schema_version: 1.0.0
agents:
  - name: x
    base_folder: .x
    rules: [{match: "rules/[", target: "{{.Rel}}"}]
`,
			want: "invalid match pattern",
		},
		{
			name: "invalid template",
			yaml: `schema_version: 1.0.0
agents:
  - name: x
    base_folder: .x
    rules: [{match: "**", target: "{{.Rel"}]
`,
			want: "parsing target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("agents: [unterminated")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
