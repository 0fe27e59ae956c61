// Package watch runs a callback whenever files under a directory change.
// Bursts of events are coalesced, and callbacks never overlap.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pair-labs/pair/internal/logging"
)

// DefaultDebounce is the quiet period required before the callback runs.
const DefaultDebounce = 300 * time.Millisecond

// Options configure Run.
type Options struct {
	Debounce time.Duration
	Log      *logging.Logger
}

// Run watches root recursively and calls onChange after each burst of
// changes, until ctx is cancelled. An error from onChange is logged and
// watching continues. Run returns nil when ctx is cancelled.
func Run(ctx context.Context, root string, opts Options, onChange func() error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	log = log.Sub("watch")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursive(w, root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	// Armed by the first event.
	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("event")

			// New directories are not covered by existing watches.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, event.Name); err != nil {
						log.Warn().Err(err).Str("path", event.Name).Msg("cannot watch new directory")
					}
				}
			}
			timer.Reset(opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case <-timer.C:
			if err := onChange(); err != nil {
				log.Error().Err(err).Msg("change handler failed")
			}
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
