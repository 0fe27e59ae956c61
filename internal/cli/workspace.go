package cli

import (
	"fmt"

	"github.com/pair-labs/pair/internal/agents"
	"github.com/pair-labs/pair/internal/config"
	"github.com/pair-labs/pair/internal/fsutil"
	"github.com/pair-labs/pair/internal/lock"
	"github.com/pair-labs/pair/internal/project"
	"github.com/pair-labs/pair/internal/templates"
)

// workspace bundles what the install and generate commands share: the
// resolved project, the filesystem, the default templates and the agents.
type workspace struct {
	projectPath string
	fs          *fsutil.FS
	defaults    templates.Source
	registry    *agents.Registry
}

func loadWorkspace(pathFlag string) (*workspace, error) {
	projectPath, err := project.Resolve(pathFlag)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	fs := fsutil.NewOS(logger)

	defaults, err := templates.Resolve(fs, config.DefaultsDir())
	if err != nil {
		return nil, fmt.Errorf("loading default templates: %w", err)
	}

	registry, err := agents.Default()
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("project", projectPath).
		Str("defaults", defaults.Location).
		Msg("workspace loaded")

	return &workspace{
		projectPath: projectPath,
		fs:          fs,
		defaults:    defaults,
		registry:    registry,
	}, nil
}

// lock holds the project's lock until the returned release func is called.
// It waits when another pair process is rewriting the same project. Without
// a usable lock directory the command runs unlocked.
func (ws *workspace) lock() (release func(), err error) {
	dir, ok := lock.Dir()
	if !ok {
		logger.Debug().Msg("no lock directory, running unlocked")
		return func() {}, nil
	}
	l := lock.ForProject(dir, ws.projectPath)

	acquired, err := l.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		logger.Info().Str("lock", l.Path()).Msg("waiting for another process on this project")
		if err := l.Lock(); err != nil {
			return nil, err
		}
	}

	return func() {
		if err := l.Unlock(); err != nil {
			logger.Warn().Err(err).Msg("releasing project lock")
		}
	}, nil
}
