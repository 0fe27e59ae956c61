// Package templates exposes the default rule files that seed a project's
// .ai folder. The defaults are compiled into the binary; a directory on disk
// can replace them through the defaults_dir setting.
package templates

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/pair-labs/pair/internal/fsutil"
)

//go:embed defaults
var bundled embed.FS

// BundledLocation labels the compiled-in defaults in messages and logs.
const BundledLocation = "<bundled>"

// Source is a read-only tree of default templates.
type Source struct {
	FS       fs.FS
	Location string
}

// Bundled returns the defaults compiled into the binary.
func Bundled() Source {
	sub, err := fs.Sub(bundled, "defaults")
	if err != nil {
		// "defaults" is a valid, embedded path.
		panic(err)
	}
	return Source{FS: sub, Location: BundledLocation}
}

// Resolve returns the templates in dir when dir is set, otherwise the
// bundled defaults. A configured dir that is missing or empty is an error.
func Resolve(f *fsutil.FS, dir string) (Source, error) {
	if dir == "" {
		return Bundled(), nil
	}

	empty, err := f.IsEmptyDir(dir)
	if err != nil {
		return Source{}, fmt.Errorf("checking defaults directory: %w", err)
	}
	if empty {
		return Source{}, fmt.Errorf("defaults directory %s is missing or empty", dir)
	}

	return Source{FS: f.Tree(dir), Location: dir}, nil
}
