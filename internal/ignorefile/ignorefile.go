// Package ignorefile keeps generated agent folders listed in a project's
// revision-control ignore file.
package ignorefile

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/pair-labs/pair/internal/fsutil"
)

// EnsureEntries appends every entry not already present in the ignore file
// at path, one per line, and returns the entries it added. An entry counts
// as present when it occurs anywhere in the file, so ".cursor/" or
// "/.cursor" also cover ".cursor". A missing file is left missing. Read and
// write failures are *fsutil.IOError.
func EnsureEntries(f *fsutil.FS, path string, entries []string) ([]string, error) {
	content, err := f.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	updated := string(content)
	var added []string
	for _, entry := range entries {
		if entry == "" || strings.Contains(updated, entry) {
			continue
		}
		// Keep each entry on its own line.
		if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
			updated += "\n"
		}
		updated += entry + "\n"
		added = append(added, entry)
	}

	if len(added) == 0 {
		return nil, nil
	}

	if err := f.WriteFile(path, []byte(updated)); err != nil {
		return nil, err
	}

	return added, nil
}
