package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/pair-labs/pair/internal/logging"
	"github.com/spf13/afero"
)

// DirPerm is the mode used for every directory this package creates.
const DirPerm os.FileMode = 0o755

// excludedNames are OS and VCS leftovers never copied into a destination tree.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
	"Thumbs.db": true,
}

// Filter selects and renames the files copied for one agent. Target receives
// a slash-separated path relative to the source root and returns the
// destination path relative to the destination root, or false to skip it.
type Filter interface {
	Target(rel string) (string, bool)
}

// FS runs filesystem operations against an afero.Fs.
type FS struct {
	fs  afero.Fs
	log *logging.Logger
}

// New returns an FS backed by fsys.
func New(fsys afero.Fs, log *logging.Logger) *FS {
	if log == nil {
		log = logging.Nop()
	}
	return &FS{fs: fsys, log: log.Sub("fsutil")}
}

// NewOS returns an FS backed by the operating system.
func NewOS(log *logging.Logger) *FS {
	return New(afero.NewOsFs(), log)
}

// Exists reports whether path exists.
func (f *FS) Exists(p string) (bool, error) {
	ok, err := afero.Exists(f.fs, p)
	if err != nil {
		return false, ioErr("stat", p, err)
	}
	return ok, nil
}

// IsEmptyDir reports whether p is missing, is not a directory, or has no
// entries other than excludedNames. Only a directory holding something the
// copy functions would read counts as populated.
func (f *FS) IsEmptyDir(p string) (bool, error) {
	info, err := f.fs.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, ioErr("stat", p, err)
	}
	if !info.IsDir() {
		return true, nil
	}
	entries, err := afero.ReadDir(f.fs, p)
	if err != nil {
		return false, ioErr("readdir", p, err)
	}
	for _, entry := range entries {
		if !excludedNames[entry.Name()] {
			return false, nil
		}
	}
	return true, nil
}

// ReadFile returns the contents of p.
func (f *FS) ReadFile(p string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, p)
	if err != nil {
		return nil, ioErr("read", p, err)
	}
	return data, nil
}

// WriteFile replaces the contents of p. An existing file keeps its mode.
func (f *FS) WriteFile(p string, data []byte) error {
	perm := os.FileMode(0o644)
	info, err := f.fs.Stat(p)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return ioErr("stat", p, err)
	}

	if err := afero.WriteFile(f.fs, p, data, perm); err != nil {
		return ioErr("write", p, err)
	}
	return nil
}

// CreateDirectory creates p and any missing parents. It is a no-op when p
// is already a directory.
func (f *FS) CreateDirectory(p string) error {
	info, err := f.fs.Stat(p)
	switch {
	case err == nil && !info.IsDir():
		return ioErr("mkdir", p, ErrNotDir)
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return ioErr("mkdir", p, err)
	}

	if err := f.fs.MkdirAll(p, DirPerm); err != nil {
		return ioErr("mkdir", p, err)
	}
	f.log.Debug().Str("path", p).Msg("created directory")
	return nil
}

// TruncateDirectory removes everything inside p and keeps p itself.
func (f *FS) TruncateDirectory(p string) error {
	info, err := f.fs.Stat(p)
	if err != nil {
		return ioErr("truncate", p, err)
	}
	if !info.IsDir() {
		return ioErr("truncate", p, ErrNotDir)
	}

	entries, err := afero.ReadDir(f.fs, p)
	if err != nil {
		return ioErr("truncate", p, err)
	}
	for _, entry := range entries {
		child := filepath.Join(p, entry.Name())
		if err := f.fs.RemoveAll(child); err != nil {
			return ioErr("remove", child, err)
		}
	}

	f.log.Debug().Str("path", p).Int("entries", len(entries)).Msg("truncated directory")
	return nil
}

// Remove deletes p recursively. A missing p is not an error.
func (f *FS) Remove(p string) error {
	if err := f.fs.RemoveAll(p); err != nil {
		return ioErr("remove", p, err)
	}
	f.log.Debug().Str("path", p).Msg("removed")
	return nil
}

// Tree exposes dir as a read-only source tree for the copy functions.
// Copy errors on the tree name dir.
func (f *FS) Tree(dir string) fs.FS {
	return tree{FS: afero.NewIOFS(afero.NewBasePathFs(f.fs, dir)), dir: dir}
}

// tree is an fs.FS rooted at a directory on an FS.
type tree struct {
	fs.FS
	dir string
}

// location names src in errors: its directory for a Tree, "." otherwise.
func location(src fs.FS) string {
	if t, ok := src.(tree); ok {
		return t.dir
	}
	return "."
}

// CopyDirectoryFiles copies every file of src into destDir, keeping relative
// paths and overwriting existing files. It returns the relative paths written.
func (f *FS) CopyDirectoryFiles(src fs.FS, destDir string) ([]string, error) {
	return f.copyTree(src, destDir, nil)
}

// CopyDirectoryFilesForAgent copies the files of src that filter accepts into
// destDir, at the destination paths filter returns.
func (f *FS) CopyDirectoryFilesForAgent(src fs.FS, destDir string, filter Filter) ([]string, error) {
	if filter == nil {
		return nil, fmt.Errorf("copying into %s: nil filter", destDir)
	}
	return f.copyTree(src, destDir, filter)
}

func (f *FS) copyTree(src fs.FS, destDir string, filter Filter) ([]string, error) {
	info, err := fs.Stat(src, ".")
	if err != nil {
		return nil, ioErr("copy", location(src), err)
	}
	if !info.IsDir() {
		return nil, ioErr("copy", location(src), ErrNotDir)
	}

	var written []string
	err = fs.WalkDir(src, ".", func(rel string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return ioErr("read", rel, walkErr)
		}
		if rel == "." {
			return nil
		}
		if excludedNames[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// Skip directories and symlinks; directories are created on demand.
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		target := rel
		if filter != nil {
			var ok bool
			target, ok = filter.Target(rel)
			if !ok {
				f.log.Trace().Str("file", rel).Msg("filtered out")
				return nil
			}
			target = path.Clean(target)
		}
		if !filepath.IsLocal(filepath.FromSlash(target)) {
			return ioErr("copy", rel, fmt.Errorf("destination %q escapes %s", target, destDir))
		}

		dst := filepath.Join(destDir, filepath.FromSlash(target))
		if err := f.copyFile(src, rel, dst); err != nil {
			return err
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return written, err
	}

	f.log.Debug().Str("dest", destDir).Int("files", len(written)).Msg("copied tree")
	return written, nil
}

// copyFile copies one file from src into dst on f, creating parent
// directories. Owner read/write is always granted so copies out of
// read-only sources (embedded templates) stay editable.
func (f *FS) copyFile(src fs.FS, rel, dst string) error {
	in, err := src.Open(rel)
	if err != nil {
		return ioErr("open", rel, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return ioErr("stat", rel, err)
	}

	if err := f.fs.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
		return ioErr("mkdir", filepath.Dir(dst), err)
	}

	out, err := f.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0o644)
	if err != nil {
		return ioErr("create", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return ioErr("write", dst, err)
	}
	if err := out.Close(); err != nil {
		return ioErr("write", dst, err)
	}
	return nil
}
