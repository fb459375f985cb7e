// Package app implements the application layer for libref.
package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/libref/internal/adapters/fs"
	"go.trai.ch/libref/internal/adapters/props"
	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/libref/internal/core/ports"
	"go.trai.ch/libref/internal/engine/registry"
)

// App represents the main application logic.
type App struct {
	loader ports.WorkspaceLoader
	reg    *registry.Registry
	paths  domain.PathResolver
	log    ports.Logger
}

// New creates a new App instance.
func New(loader ports.WorkspaceLoader, reg *registry.Registry, paths domain.PathResolver, log ports.Logger) *App {
	return &App{
		loader: loader,
		reg:    reg,
		paths:  paths,
		log:    log,
	}
}

// LoadWorkspace reads the workspace manifest at manifestPath and opens
// every declared project, cross-resolving their library references.
func (a *App) LoadWorkspace(ctx context.Context, manifestPath string) (*domain.Workspace, error) {
	ws, err := a.loader.Load(manifestPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load workspace")
	}
	if _, err := a.reg.Scan(ctx, ws.Projects, a.openProject); err != nil {
		return nil, zerr.Wrap(err, "failed to open workspace projects")
	}
	return ws, nil
}

// openProject loads a project directory and its properties file.
func (a *App) openProject(dir string) (domain.Project, domain.PropertySource, error) {
	project, err := fs.NewProject(dir, a.paths)
	if err != nil {
		return nil, nil, err
	}
	source, err := props.Load(filepath.Join(project.Location(), props.Filename))
	if err != nil {
		return nil, nil, err
	}
	return project, source, nil
}

// Deps returns the flattened dependency list of the named project in
// packaging priority order.
func (a *App) Deps(name string) ([]domain.Project, error) {
	node, err := a.find(name)
	if err != nil {
		return nil, err
	}
	return node.FullDependencies(), nil
}

// ProjectStatus summarizes one open project for reporting.
type ProjectStatus struct {
	Name     string
	Location string
	Library  bool
	Refs     int
	Missing  bool
	Deps     int
	Target   string
}

// Status reports every open project, ordered by location.
func (a *App) Status() []ProjectStatus {
	nodes := a.reg.Nodes()
	out := make([]ProjectStatus, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ProjectStatus{
			Name:     n.Project().Name(),
			Location: n.Project().Location(),
			Library:  n.IsLibrary(),
			Refs:     len(n.Refs()),
			Missing:  n.MissingRefs(),
			Deps:     len(n.FullDependencies()),
			Target:   n.TargetID(),
		})
	}
	return out
}

// Move records that a library referenced by the named project moved from
// oldRel to newRel. The declaration is rewritten, rebound to the project
// at the new location and persisted.
func (a *App) Move(ctx context.Context, name, oldRel, newRel string) error {
	node, err := a.find(name)
	if err != nil {
		return err
	}
	if _, err := a.reg.Rewrite(ctx, node.Project(), oldRel, newRel); err != nil {
		return zerr.Wrap(err, "failed to move library reference")
	}
	return nil
}

// Reload re-reads the named project's declarations from disk and
// reconciles its bindings with the rest of the workspace.
func (a *App) Reload(ctx context.Context, name string) (domain.ReloadDiff, error) {
	node, err := a.find(name)
	if err != nil {
		return domain.ReloadDiff{}, err
	}
	return a.reg.Reload(ctx, node.Project())
}

func (a *App) find(name string) (*domain.Node, error) {
	for _, n := range a.reg.Nodes() {
		if n.Project().Name() == name {
			return n, nil
		}
	}
	return nil, zerr.With(domain.ErrProjectNotOpen, "project", name)
}
