package domain_test

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/zerr"
)

// Shared fixtures for the domain tests. Projects live under a virtual /ws
// root and declare siblings with ../<name> paths, so cleaning is all the
// canonicalization the fake resolver needs.

type project struct {
	name string
	loc  string
}

func (p project) Name() string     { return p.name }
func (p project) Location() string { return p.loc }

type memSource struct {
	vals      map[string]string
	pending   map[string]string
	saves     int
	saveErr   error
	reloadErr error
}

func (s *memSource) Get(key string) (string, bool) {
	v, ok := s.vals[key]
	return v, ok
}

func (s *memSource) Set(key, value string) {
	s.vals[key] = value
}

func (s *memSource) Save() error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	return nil
}

func (s *memSource) Reload() error {
	if s.reloadErr != nil {
		return s.reloadErr
	}
	if s.pending != nil {
		s.vals = s.pending
		s.pending = nil
	}
	return nil
}

// cleanPaths canonicalizes by cleaning only.
type cleanPaths struct{}

func (cleanPaths) Canonical(path string) (string, error) {
	return filepath.Clean(path), nil
}

// failingPaths fails canonicalization for the listed cleaned paths.
type failingPaths struct {
	fail map[string]bool
}

func (f failingPaths) Canonical(path string) (string, error) {
	p := filepath.Clean(path)
	if f.fail[p] {
		return "", zerr.With(zerr.New("canonicalization failed"), "path", p)
	}
	return p, nil
}

func refProps(paths ...string) map[string]string {
	vals := make(map[string]string, len(paths))
	for i, p := range paths {
		vals[fmt.Sprintf("libraryRef%d", i+1)] = p
	}
	return vals
}

// newTestNode builds a node for /ws/<name> declaring the given references.
func newTestNode(name string, refs ...string) (*domain.Node, *memSource) {
	src := &memSource{vals: refProps(refs...)}
	node := domain.NewNode(project{name: name, loc: "/ws/" + name}, src, cleanPaths{})
	return node, src
}

func names(projects []domain.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name()
	}
	return out
}
