// Package fsutil provides the filesystem primitives the installer and the
// rules generator are built from: directory creation, recursive removal,
// truncation, and tree copies that can be filtered and renamed per agent.
// All operations run against an afero.Fs so they can target the OS or a
// scratch filesystem, and every failure surfaces as an *IOError.
package fsutil
