// Package registry implements the workspace project registry. It tracks
// the open projects, wires their library references against each other
// and keeps the flattened dependency lists of dependents current when a
// project's resolution state changes.
package registry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/libref/internal/core/ports"
)

// OpenFunc loads a project handle and its property source from a
// directory. It is supplied by the caller so the registry stays
// independent of the on-disk project layout.
type OpenFunc func(dir string) (domain.Project, domain.PropertySource, error)

// Registry tracks the currently open projects, keyed by canonical
// project location.
type Registry struct {
	paths  domain.PathResolver
	log    ports.Logger
	tracer ports.Tracer

	mu    sync.RWMutex
	nodes map[string]*domain.Node
}

// New creates an empty Registry.
func New(paths domain.PathResolver, log ports.Logger, tracer ports.Tracer) *Registry {
	return &Registry{
		paths:  paths,
		log:    log,
		tracer: tracer,
		nodes:  make(map[string]*domain.Node),
	}
}

// key returns the canonical location used to identify a project. When
// canonicalization fails the raw location is used so lookups stay
// consistent for projects the resolver cannot reach.
func (r *Registry) key(p domain.Project) string {
	loc, err := r.paths.Canonical(p.Location())
	if err != nil {
		return p.Location()
	}
	return loc
}

// Open registers a project and cross-resolves library references in both
// directions: the new node binds its declarations against every open
// project, and every open project gets a chance to bind its unresolved
// declarations against the new one. Dependents of any node that gained a
// binding have their flattened lists recomputed.
func (r *Registry) Open(ctx context.Context, project domain.Project, props domain.PropertySource) (*domain.Node, error) {
	_, span := r.tracer.Start(ctx, "registry.open")
	defer span.End()
	span.SetAttribute("project", project.Name())

	key := r.key(project)

	r.mu.Lock()
	if _, ok := r.nodes[key]; ok {
		r.mu.Unlock()
		return nil, zerr.With(domain.ErrProjectAlreadyOpen, "project", project.Name())
	}
	node := domain.NewNode(project, props, r.paths)
	others := make([]*domain.Node, 0, len(r.nodes))
	for _, other := range r.nodes {
		others = append(others, other)
	}
	r.nodes[key] = node
	r.mu.Unlock()

	changed := make(map[*domain.Node]bool)
	for _, other := range others {
		for node.Resolve(other) != nil {
			changed[node] = true
		}
		for other.Resolve(node) != nil {
			changed[other] = true
		}
	}
	for n := range changed {
		refreshDependents(n)
	}

	r.log.Info(fmt.Sprintf("opened project %s with %d declared references",
		project.Name(), len(node.Refs())))
	return node, nil
}

// Close removes a project from the registry. Every dependent's reference
// to it is unbound, leaving those declarations unresolved, and the
// closing node's own bindings are severed so the remaining projects drop
// their back-links to it.
func (r *Registry) Close(project domain.Project) error {
	key := r.key(project)

	r.mu.Lock()
	node, ok := r.nodes[key]
	if !ok {
		r.mu.Unlock()
		return zerr.With(domain.ErrProjectNotOpen, "project", project.Name())
	}
	delete(r.nodes, key)
	r.mu.Unlock()

	for _, parent := range node.Parents() {
		for {
			ref := parent.RefFor(node.Project())
			if ref == nil {
				break
			}
			ref.Close()
		}
		refreshDependents(parent)
	}
	for _, ref := range node.Refs() {
		ref.Close()
	}

	r.log.Info(fmt.Sprintf("closed project %s", project.Name()))
	return nil
}

// Reload re-reads a project's declarations from its property source.
// References dropped by the reload are unbound, added declarations are
// resolved against the open projects, and dependents are refreshed when
// anything changed.
func (r *Registry) Reload(ctx context.Context, project domain.Project) (domain.ReloadDiff, error) {
	_, span := r.tracer.Start(ctx, "registry.reload")
	defer span.End()
	span.SetAttribute("project", project.Name())

	node := r.Get(project)
	if node == nil {
		return domain.ReloadDiff{}, zerr.With(domain.ErrProjectNotOpen, "project", project.Name())
	}

	diff, err := node.Reload()
	if err != nil {
		return diff, err
	}

	for _, ref := range diff.Removed {
		ref.Close()
	}
	if diff.Added {
		for _, other := range r.Nodes() {
			if other == node {
				continue
			}
			for node.Resolve(other) != nil {
			}
		}
	}
	if diff.HasDiff() {
		refreshDependents(node)
	}
	return diff, nil
}

// Rewrite updates a project's declaration of a moved library: the
// unresolved reference declaring oldRel is rewritten to newRel, bound to
// the open project at the new location and persisted. Dependents of the
// project are refreshed on success.
//
// A persistence failure is returned alongside the rewritten ref; the
// in-memory binding stands.
func (r *Registry) Rewrite(ctx context.Context, project domain.Project, oldRel, newRel string) (*domain.LibraryRef, error) {
	_, span := r.tracer.Start(ctx, "registry.rewrite")
	defer span.End()
	span.SetAttribute("project", project.Name())
	span.SetAttribute("new_path", newRel)

	node := r.Get(project)
	if node == nil {
		return nil, zerr.With(domain.ErrProjectNotOpen, "project", project.Name())
	}
	target := r.Find(filepath.Join(project.Location(), newRel))
	if target == nil {
		return nil, zerr.With(domain.ErrTargetNotOpen, "path", newRel)
	}

	ref, err := node.UpdateLibrary(oldRel, newRel, target)
	if ref == nil && err == nil {
		return nil, zerr.With(zerr.With(domain.ErrRefNotDeclared,
			"project", project.Name()),
			"path", oldRel)
	}
	if ref != nil {
		refreshDependents(node)
	}
	if err != nil {
		r.log.Error(err)
		return ref, err
	}

	r.log.Info(fmt.Sprintf("rewrote library reference of %s from %s to %s",
		project.Name(), oldRel, newRel))
	return ref, nil
}

// Get returns the node tracking the given project, or nil.
func (r *Registry) Get(p domain.Project) *domain.Node {
	return r.Find(p.Location())
}

// Find returns the node whose project lives at the given location, or
// nil. The location is canonicalized before the lookup.
func (r *Registry) Find(location string) *domain.Node {
	key := location
	if loc, err := r.paths.Canonical(location); err == nil {
		key = loc
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodes[key]
}

// Nodes returns the open nodes ordered by canonical location.
func (r *Registry) Nodes() []*domain.Node {
	r.mu.RLock()
	keys := make([]string, 0, len(r.nodes))
	for k := range r.nodes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	nodes := make([]*domain.Node, 0, len(keys))
	for _, k := range keys {
		nodes = append(nodes, r.nodes[k])
	}
	r.mu.RUnlock()
	return nodes
}

// Scan loads the given project directories concurrently and opens each
// loaded project. Loading runs in parallel; opening is sequential so the
// cross-resolution order stays deterministic.
func (r *Registry) Scan(ctx context.Context, dirs []string, open OpenFunc) ([]*domain.Node, error) {
	ctx, span := r.tracer.Start(ctx, "registry.scan")
	defer span.End()
	span.SetAttribute("projects", len(dirs))

	type loaded struct {
		project domain.Project
		props   domain.PropertySource
	}
	results := make([]loaded, len(dirs))

	g, _ := errgroup.WithContext(ctx)
	for i, dir := range dirs {
		g.Go(func() error {
			project, props, err := open(dir)
			if err != nil {
				return zerr.With(errors.Join(domain.ErrProjectLoadFailed, err), "dir", dir)
			}
			results[i] = loaded{project: project, props: props}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nodes := make([]*domain.Node, 0, len(results))
	for _, res := range results {
		node, err := r.Open(ctx, res.project, res.props)
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// refreshDependents recomputes the flattened dependency lists of every
// node transitively depending on n. n itself is assumed current.
func refreshDependents(n *domain.Node) {
	visited := map[*domain.Node]bool{n: true}
	queue := n.Parents()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		cur.RefreshDependencies()
		queue = append(queue, cur.Parents()...)
	}
}
