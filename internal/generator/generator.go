// Package generator rebuilds an agent's configuration folder from a project's
// .ai folder, or from the default templates when .ai is missing or empty.
//
// Generation is destructive: the agent folder is removed and recreated on
// every run, so it never holds files from an earlier generation. There is no
// backup and no rollback; re-running repairs a partially written folder.
package generator

import (
	"fmt"
	"path/filepath"

	"github.com/pair-labs/pair/internal/agents"
	"github.com/pair-labs/pair/internal/branding"
	"github.com/pair-labs/pair/internal/fsutil"
	"github.com/pair-labs/pair/internal/logging"
	"github.com/pair-labs/pair/internal/templates"
)

// SourceKind says which tree an agent folder was generated from.
type SourceKind string

const (
	SourceProject  SourceKind = "project"
	SourceDefaults SourceKind = "defaults"
)

// Result describes one generated agent folder.
type Result struct {
	Agent  string
	Dest   string
	Source SourceKind
	Files  []string
}

// Generator writes agent folders into projects.
type Generator struct {
	fs       *fsutil.FS
	defaults templates.Source
	log      *logging.Logger
}

// New returns a Generator that falls back to defaults when a project has no
// populated .ai folder.
func New(f *fsutil.FS, defaults templates.Source, log *logging.Logger) *Generator {
	if log == nil {
		log = logging.Nop()
	}
	return &Generator{fs: f, defaults: defaults, log: log.Sub("generator")}
}

// Generate replaces projectPath/<agent base folder> with the files the agent
// selects from the project's .ai folder or the defaults.
func (g *Generator) Generate(agent *agents.Agent, projectPath string) (*Result, error) {
	dest := filepath.Join(projectPath, agent.BaseFolder())

	if err := g.fs.Remove(dest); err != nil {
		return nil, fmt.Errorf("clearing %s: %w", dest, err)
	}
	if err := g.fs.CreateDirectory(dest); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dest, err)
	}

	aiDir := filepath.Join(projectPath, branding.ProjectDir())
	empty, err := g.fs.IsEmptyDir(aiDir)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", aiDir, err)
	}

	source := g.fs.Tree(aiDir)
	kind := SourceProject
	location := aiDir
	if empty {
		source = g.defaults.FS
		kind = SourceDefaults
		location = g.defaults.Location
	}

	files, err := g.fs.CopyDirectoryFilesForAgent(source, dest, agent)
	if err != nil {
		return nil, fmt.Errorf("generating %s from %s: %w", agent.Name(), location, err)
	}

	g.log.Debug().
		Str("agent", agent.Name()).
		Str("source", location).
		Int("files", len(files)).
		Msg("generated agent folder")

	return &Result{
		Agent:  agent.Name(),
		Dest:   dest,
		Source: kind,
		Files:  files,
	}, nil
}

// GenerateAll runs Generate for each agent in order and stops at the first
// failure, returning the results produced so far.
func (g *Generator) GenerateAll(list []*agents.Agent, projectPath string) ([]*Result, error) {
	results := make([]*Result, 0, len(list))
	for _, agent := range list {
		res, err := g.Generate(agent, projectPath)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
