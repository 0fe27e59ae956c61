package agents

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed agents.yaml
var rawRegistry []byte

// SupportedSchema is the range of registry schema versions this build reads.
const SupportedSchema = "^1"

// Registry is the ordered, read-only set of supported agents.
type Registry struct {
	agents []*Agent
	byName map[string]*Agent
}

type registrySpec struct {
	SchemaVersion string      `yaml:"schema_version"`
	Agents        []agentSpec `yaml:"agents"`
}

type agentSpec struct {
	Name       string     `yaml:"name"`
	BaseFolder string     `yaml:"base_folder"`
	Rules      []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Match  string `yaml:"match"`
	Base   string `yaml:"base"`
	Target string `yaml:"target"`
	Skip   bool   `yaml:"skip"`
}

// Default returns a registry built from the embedded agents.yaml.
func Default() (*Registry, error) {
	r, err := Parse(rawRegistry)
	if err != nil {
		return nil, fmt.Errorf("loading built-in agents: %w", err)
	}
	return r, nil
}

// Parse validates registry YAML and builds a Registry from it.
func Parse(data []byte) (*Registry, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("invalid agent registry: %s", strings.Join(msgs, "; "))
	}

	var spec registrySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing agent registry: %w", err)
	}

	if err := checkSchemaVersion(spec.SchemaVersion); err != nil {
		return nil, err
	}

	r := &Registry{byName: make(map[string]*Agent, len(spec.Agents))}
	folders := make(map[string]string, len(spec.Agents))

	for _, as := range spec.Agents {
		if _, dup := r.byName[as.Name]; dup {
			return nil, fmt.Errorf("duplicate agent name %q", as.Name)
		}
		if other, dup := folders[as.BaseFolder]; dup {
			return nil, fmt.Errorf("agents %q and %q share base folder %q", other, as.Name, as.BaseFolder)
		}

		agent := &Agent{name: as.Name, baseFolder: as.BaseFolder}
		for i, rs := range as.Rules {
			compiled, err := compileRule(as.Name, i, rs)
			if err != nil {
				return nil, err
			}
			agent.rules = append(agent.rules, compiled)
		}

		r.agents = append(r.agents, agent)
		r.byName[as.Name] = agent
		folders[as.BaseFolder] = as.Name
	}

	return r, nil
}

func checkSchemaVersion(v string) error {
	version, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return fmt.Errorf("parsing schema_version %q: %w", v, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing supported schema range: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("agent registry schema %s is not supported (want %s)", version, SupportedSchema)
	}
	return nil
}

// All returns every registered agent in registration order.
func (r *Registry) All() []*Agent {
	out := make([]*Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

// Only returns the registered agents whose names appear in names, in
// registration order. Unknown names are ignored.
func (r *Registry) Only(names []string) []*Agent {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []*Agent
	for _, a := range r.agents {
		if wanted[a.name] {
			out = append(out, a)
		}
	}
	return out
}

// Select returns Only(names), or All when names is empty.
func (r *Registry) Select(names []string) []*Agent {
	if len(names) == 0 {
		return r.All()
	}
	return r.Only(names)
}

// Get looks up an agent by name.
func (r *Registry) Get(name string) (*Agent, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns the registered agent names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.agents))
	for i, a := range r.agents {
		names[i] = a.name
	}
	return names
}
