// Package fs provides the filesystem-backed adapters: path canonicalization
// and project handles rooted in real directories.
package fs

import (
	"errors"
	"io/fs"
	"path/filepath"

	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/zerr"
)

var _ domain.PathResolver = (*Resolver)(nil)

// Resolver canonicalizes paths against the local filesystem.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Canonical makes path absolute, resolves symlinks and cleans relative
// segments. A path that does not exist is resolved against its longest
// existing ancestor; declared paths routinely point at locations that
// are gone after a library moved.
func (r *Resolver) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve absolute path"), "path", path)
	}
	resolved, err := evalExisting(filepath.Clean(abs))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve symlinks"), "path", abs)
	}
	return filepath.Clean(resolved), nil
}

// evalExisting resolves symlinks for the longest existing prefix of path
// and reattaches the remainder verbatim.
func evalExisting(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	dir := filepath.Dir(path)
	if dir == path {
		return path, nil
	}
	resolvedDir, err := evalExisting(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(path)), nil
}
