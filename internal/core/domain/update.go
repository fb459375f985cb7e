package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// UpdateLibrary rewrites the declared path of an unresolved reference after
// a library moved, binding it to the project now at the new location.
//
// Only unresolved refs are eligible: a resolved ref's binding is not
// revisited here. The first unresolved ref whose declared path canonicalizes
// to the same location as oldRel is updated to newRel, bound to target with
// the same side effects as Resolve, and returned. If no ref matches, the
// result is (nil, nil).
//
// The rewrite is also persisted: the sequential reference key whose current
// value equals the old declared path is set to newRel and the source is
// saved. A persistence failure is returned alongside the updated ref; the
// in-memory binding is not rolled back.
func (n *Node) UpdateLibrary(oldRel, newRel string, target *Node) (*LibraryRef, error) {
	root := n.project.Location()
	oldAbs, err := n.paths.Canonical(filepath.Join(root, oldRel))
	if err != nil {
		return nil, nil
	}
	targetLoc, err := n.paths.Canonical(target.project.Location())
	if err != nil {
		targetLoc = target.project.Location()
	}

	n.mu.Lock()
	var match *LibraryRef
	var oldDeclared string
	for _, r := range n.refs {
		if r.resolved != nil {
			continue
		}
		abs, err := n.paths.Canonical(filepath.Join(root, r.relPath))
		if err != nil {
			continue
		}
		if abs == oldAbs {
			match = r
			oldDeclared = r.relPath
			r.relPath = platformPath(newRel)
			r.resolved = target
			r.location = targetLoc
			break
		}
	}
	if match == nil {
		n.mu.Unlock()
		return nil, nil
	}
	n.refreshFlatLocked()
	n.mu.Unlock()

	target.addParent(n)

	// Persist outside the lock; the binding above stands either way.
	return match, n.replaceRefProperty(oldDeclared, newRel)
}

// replaceRefProperty finds the sequential reference key currently holding
// oldValue, rewrites it to newValue and saves the source.
func (n *Node) replaceRefProperty(oldValue, newValue string) error {
	for i := 1; ; i++ {
		key := refKey(i)
		v, ok := n.props.Get(key)
		if !ok {
			break
		}
		if normalizePath(v) != normalizePath(oldValue) {
			continue
		}
		n.props.Set(key, newValue)
		if err := n.props.Save(); err != nil {
			return zerr.With(zerr.With(zerr.Wrap(err, ErrSaveFailed.Error()),
				"project", n.project.Name()),
				"key", key)
		}
		return nil
	}
	return zerr.With(zerr.With(ErrRefKeyNotFound,
		"project", n.project.Name()),
		"value", oldValue)
}
