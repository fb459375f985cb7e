// Package config provides the workspace manifest loader for libref.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/libref/internal/core/ports"
)

// Filename is the default workspace manifest name.
const Filename = "libref.yaml"

// Manifest represents the structure of the libref.yaml workspace manifest.
type Manifest struct {
	Version  string   `yaml:"version"`
	Projects []string `yaml:"projects"`
}

// FileWorkspaceLoader implements ports.WorkspaceLoader using a YAML file.
type FileWorkspaceLoader struct {
	log ports.Logger
}

// NewLoader creates a new FileWorkspaceLoader.
func NewLoader(log ports.Logger) *FileWorkspaceLoader {
	return &FileWorkspaceLoader{log: log}
}

// Load reads the workspace manifest at the given path. Project entries
// are resolved relative to the manifest's directory.
func (l *FileWorkspaceLoader) Load(path string) (*domain.Workspace, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, errors.Join(domain.ErrManifestReadFailed, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Join(domain.ErrManifestParseFailed, err)
	}

	if len(manifest.Projects) == 0 {
		return nil, domain.ErrNoProjectsDeclared
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Join(domain.ErrManifestReadFailed, err)
	}

	projects := make([]string, 0, len(manifest.Projects))
	for _, p := range manifest.Projects {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		projects = append(projects, filepath.Clean(p))
	}

	l.log.Info(fmt.Sprintf("loaded workspace manifest with %d projects", len(projects)))

	return &domain.Workspace{
		Root:     root,
		Projects: projects,
	}, nil
}
