package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/zerr"
)

var _ domain.Project = (*Project)(nil)

// Project is a project handle rooted in a directory on disk. The directory
// name doubles as the display name.
type Project struct {
	name     string
	location string
}

// NewProject creates a handle for the project at dir. The location is
// canonicalized immediately so that handle identity is stable however the
// directory was spelled.
func NewProject(dir string, paths domain.PathResolver) (*Project, error) {
	loc, err := paths.Canonical(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to locate project"), "dir", dir)
	}
	info, err := os.Stat(loc)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to locate project"), "dir", dir)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.New("project location is not a directory"), "dir", dir)
	}
	return &Project{name: filepath.Base(loc), location: loc}, nil
}

// Name returns the project's display name.
func (p *Project) Name() string {
	return p.name
}

// Location returns the canonical project root.
func (p *Project) Location() string {
	return p.location
}
