package domain

import "github.com/cespare/xxhash/v2"

// LibraryRef is one declared reference from a project to a library project.
// It is owned by the Node it was loaded for; the same library used by two
// projects yields two distinct refs.
//
// A ref starts unresolved: only the declared relative path is known. Binding
// to an open library project happens through Node.Resolve or
// Node.UpdateLibrary.
type LibraryRef struct {
	owner *Node

	// Guarded by owner.mu.
	relPath  string
	resolved *Node
	location string
}

func newRef(owner *Node, relPath string) *LibraryRef {
	return &LibraryRef{owner: owner, relPath: relPath}
}

// Owner returns the node this reference was declared by.
func (r *LibraryRef) Owner() *Node {
	return r.owner
}

// RelativePath returns the declared path of the library, relative to the
// owner's project root and normalized to the platform separator.
func (r *LibraryRef) RelativePath() string {
	r.owner.mu.RLock()
	defer r.owner.mu.RUnlock()
	return r.relPath
}

// Resolved returns the node of the library project this ref is bound to, or
// nil while the reference is unresolved.
func (r *LibraryRef) Resolved() *Node {
	r.owner.mu.RLock()
	defer r.owner.mu.RUnlock()
	return r.resolved
}

// Location returns the canonical location of the resolved library project.
// It is empty while the reference is unresolved.
func (r *LibraryRef) Location() string {
	r.owner.mu.RLock()
	defer r.owner.mu.RUnlock()
	return r.location
}

// Close unbinds the reference from its resolved library project, removes the
// owner from that project's dependent set and recomputes the owner's
// flattened dependency list. Closing an unresolved ref is a no-op.
func (r *LibraryRef) Close() {
	owner := r.owner

	owner.mu.Lock()
	target := r.resolved
	if target == nil {
		owner.mu.Unlock()
		return
	}
	r.resolved = nil
	r.location = ""
	owner.refreshFlatLocked()
	owner.mu.Unlock()

	target.removeParent(owner)
}

// MatchesRef reports whether other declares the same library for the same
// owning project.
func (r *LibraryRef) MatchesRef(other *LibraryRef) bool {
	if other == nil {
		return false
	}
	return r.owner == other.owner &&
		normalizePath(r.RelativePath()) == normalizePath(other.RelativePath())
}

// MatchesProject reports whether the ref is resolved to the given project.
func (r *LibraryRef) MatchesProject(p Project) bool {
	target := r.Resolved()
	return target != nil && SameProject(target.project, p)
}

// MatchesPath reports whether the declared path and the given path point at
// the same entry after normalization. The comparison is textual; it does not
// touch the filesystem.
func (r *LibraryRef) MatchesPath(path string) bool {
	return normalizePath(r.RelativePath()) == normalizePath(path)
}

// Hash returns a stable hash of the declared path, suitable for keying refs
// in external collections alongside MatchesRef.
func (r *LibraryRef) Hash() uint64 {
	return xxhash.Sum64String(normalizePath(r.RelativePath()))
}
