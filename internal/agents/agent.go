package agents

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
)

// Names of the agents shipped in the embedded registry.
const (
	Copilot = "copilot"
	Cursor  = "cursor"
	Junie   = "junie"
)

// Agent is one supported AI coding tool. Agents are immutable once loaded.
type Agent struct {
	name       string
	baseFolder string
	rules      []rule
}

// TargetData holds the template fields available to a rule's target.
type TargetData struct {
	Path string // full source path, e.g. "rules/php/laravel.md"
	Rel  string // path below the rule base, e.g. "php/laravel.md"
	Dir  string // directory of Rel with a trailing slash, or ""
	Name string // "laravel.md"
	Stem string // "laravel"
	Ext  string // ".md"
}

type rule struct {
	match  string
	base   string
	target *template.Template
	skip   bool
}

// Name returns the agent's unique identifier (e.g., "cursor").
func (a *Agent) Name() string { return a.name }

// BaseFolder returns the dotted folder written under the project root
// (e.g., ".cursor").
func (a *Agent) BaseFolder() string { return a.baseFolder }

// Target reports whether the source file at rel belongs in this agent's
// folder and, if so, its destination path relative to that folder.
func (a *Agent) Target(rel string) (string, bool) {
	for _, r := range a.rules {
		ok, err := doublestar.Match(r.match, rel)
		if err != nil || !ok {
			continue
		}
		if r.skip {
			return "", false
		}

		dest, err := r.render(rel)
		if err != nil || dest == "" {
			return "", false
		}
		return dest, true
	}
	return "", false
}

func (r rule) render(rel string) (string, error) {
	var buf bytes.Buffer
	if err := r.target.Execute(&buf, newTargetData(rel, r.base)); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func newTargetData(p, base string) TargetData {
	sub := p
	if base != "" {
		sub = strings.TrimPrefix(p, strings.TrimSuffix(base, "/")+"/")
	}

	dir := path.Dir(sub)
	if dir == "." {
		dir = ""
	} else {
		dir += "/"
	}

	name := path.Base(sub)
	ext := path.Ext(name)

	return TargetData{
		Path: p,
		Rel:  sub,
		Dir:  dir,
		Name: name,
		Stem: strings.TrimSuffix(name, ext),
		Ext:  ext,
	}
}

func compileRule(agent string, idx int, spec ruleSpec) (rule, error) {
	if !doublestar.ValidatePattern(spec.Match) {
		return rule{}, fmt.Errorf("agent %s rule %d: invalid match pattern %q", agent, idx, spec.Match)
	}

	r := rule{match: spec.Match, base: spec.Base, skip: spec.Skip}
	if r.skip {
		return r, nil
	}

	tmpl, err := template.New(fmt.Sprintf("%s-%d", agent, idx)).Option("missingkey=error").Parse(spec.Target)
	if err != nil {
		return rule{}, fmt.Errorf("agent %s rule %d: parsing target: %w", agent, idx, err)
	}
	r.target = tmpl
	return r, nil
}
