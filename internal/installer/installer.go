// Package installer bootstraps a project's .ai folder from the default
// templates and keeps the agent folders listed in the project's ignore file.
package installer

import (
	"fmt"
	"path/filepath"

	"github.com/pair-labs/pair/internal/agents"
	"github.com/pair-labs/pair/internal/branding"
	"github.com/pair-labs/pair/internal/fsutil"
	"github.com/pair-labs/pair/internal/ignorefile"
	"github.com/pair-labs/pair/internal/logging"
	"github.com/pair-labs/pair/internal/templates"
)

// AIFolderAction records what Install did with the .ai folder.
type AIFolderAction string

const (
	AIFolderCreated  AIFolderAction = "created"
	AIFolderReplaced AIFolderAction = "replaced"
	AIFolderSkipped  AIFolderAction = "skipped"
)

// Options control a single install run.
type Options struct {
	// Force replaces the contents of an existing .ai folder.
	Force bool
	// Agents limits the ignore-file entries to these agent names. Empty
	// means every registered agent; unknown names match nothing.
	Agents []string
}

// Report summarises an install run.
type Report struct {
	ProjectPath string
	AIFolder    string
	AIAction    AIFolderAction
	AIFiles     []string
	IgnoreFile  string
	// IgnoreFound is false when the project has no ignore file.
	IgnoreFound bool
	IgnoreAdded []string
}

// Installer performs the install steps against a filesystem.
type Installer struct {
	fs       *fsutil.FS
	defaults templates.Source
	registry *agents.Registry
	log      *logging.Logger
}

// New returns an Installer.
func New(f *fsutil.FS, defaults templates.Source, registry *agents.Registry, log *logging.Logger) *Installer {
	if log == nil {
		log = logging.Nop()
	}
	return &Installer{fs: f, defaults: defaults, registry: registry, log: log.Sub("installer")}
}

// Install ensures the .ai folder exists and that the ignore file lists the
// target agents' folders. The two steps are independent: an existing .ai
// folder without Force is skipped, and the ignore file is still updated.
func (in *Installer) Install(projectPath string, opts Options) (*Report, error) {
	report := &Report{ProjectPath: projectPath}

	if err := in.ensureAIFolder(projectPath, opts.Force, report); err != nil {
		return report, err
	}
	if err := in.ensureAgentsIgnored(projectPath, opts.Agents, report); err != nil {
		return report, err
	}
	return report, nil
}

func (in *Installer) ensureAIFolder(projectPath string, force bool, report *Report) error {
	aiDir := filepath.Join(projectPath, branding.ProjectDir())
	report.AIFolder = aiDir

	exists, err := in.fs.Exists(aiDir)
	if err != nil {
		return fmt.Errorf("checking %s: %w", aiDir, err)
	}

	switch {
	case exists && !force:
		report.AIAction = AIFolderSkipped
		in.log.Debug().Str("path", aiDir).Msg("ai folder exists, skipping")
		return nil
	case exists:
		if err := in.fs.TruncateDirectory(aiDir); err != nil {
			return fmt.Errorf("clearing %s: %w", aiDir, err)
		}
		report.AIAction = AIFolderReplaced
	default:
		if err := in.fs.CreateDirectory(aiDir); err != nil {
			return fmt.Errorf("creating %s: %w", aiDir, err)
		}
		report.AIAction = AIFolderCreated
	}

	files, err := in.fs.CopyDirectoryFiles(in.defaults.FS, aiDir)
	if err != nil {
		return fmt.Errorf("copying defaults from %s: %w", in.defaults.Location, err)
	}
	report.AIFiles = files

	in.log.Debug().
		Str("path", aiDir).
		Str("action", string(report.AIAction)).
		Int("files", len(files)).
		Msg("populated ai folder")
	return nil
}

func (in *Installer) ensureAgentsIgnored(projectPath string, names []string, report *Report) error {
	ignorePath := filepath.Join(projectPath, branding.IgnoreFile())
	report.IgnoreFile = ignorePath

	exists, err := in.fs.Exists(ignorePath)
	if err != nil {
		return fmt.Errorf("checking %s: %w", ignorePath, err)
	}
	if !exists {
		in.log.Debug().Str("path", ignorePath).Msg("no ignore file")
		return nil
	}
	report.IgnoreFound = true

	targets := in.registry.Select(names)
	entries := make([]string, 0, len(targets))
	for _, a := range targets {
		entries = append(entries, a.BaseFolder())
	}

	added, err := ignorefile.EnsureEntries(in.fs, ignorePath, entries)
	if err != nil {
		return err
	}
	report.IgnoreAdded = added
	return nil
}
