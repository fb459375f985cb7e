package domain

import (
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Node is the per-project aggregate: the ordered library references a
// project declares, their resolution state, and the cached flattened
// dependency list derived from them.
//
// Every read or mutation of the reference list, and every recomputation of
// the flattened list, happens under the node's own lock. Nested locking is
// only ever owner-then-dependency, and only to snapshot the dependency's
// reference list during closure recursion; nothing external (persistence,
// notification) runs under a node lock.
type Node struct {
	project Project
	props   PropertySource
	paths   PathResolver

	mu       sync.RWMutex
	refs     []*LibraryRef
	flat     []Project
	parents  []*Node
	targetID string
	settings any
}

// NewNode wraps an open project and loads its declared library references
// from the property source.
//
// References are read from the sequential keys libraryRef1, libraryRef2, ...
// and enumeration stops at the first missing index. A gap therefore hides
// every higher-indexed declaration; this matches the external encoding
// contract and is deliberate, not a bug to fix.
func NewNode(project Project, props PropertySource, paths PathResolver) *Node {
	n := &Node{
		project: project,
		props:   props,
		paths:   paths,
		flat:    []Project{},
	}
	for i := 1; ; i++ {
		v, ok := props.Get(refKey(i))
		if !ok {
			break
		}
		n.refs = append(n.refs, newRef(n, platformPath(v)))
	}
	return n
}

// Project returns the wrapped project handle.
func (n *Node) Project() Project {
	return n.project
}

// Properties returns the project's property source.
func (n *Node) Properties() PropertySource {
	return n.props
}

// Refs returns the declared references in declaration order.
func (n *Node) Refs() []*LibraryRef {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.refs)
}

// HasRefs reports whether the project declares any library references.
func (n *Node) HasRefs() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.refs) > 0
}

// MissingRefs reports whether any declared reference is still unresolved.
func (n *Node) MissingRefs() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, r := range n.refs {
		if r.resolved == nil {
			return true
		}
	}
	return false
}

// IsLibrary reports whether the project itself is a library. A missing or
// malformed flag reads as false.
func (n *Node) IsLibrary() bool {
	v, ok := n.props.Get(PropLibrary)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// TargetID returns the platform target association: the explicitly set id
// if any, otherwise the declared target property. Empty when neither is set.
// The core carries the id, it never interprets it.
func (n *Node) TargetID() string {
	n.mu.RLock()
	id := n.targetID
	n.mu.RUnlock()
	if id != "" {
		return id
	}
	v, _ := n.props.Get(PropTarget)
	return v
}

// SetTargetID records the platform target association for this node.
func (n *Node) SetTargetID(id string) {
	n.mu.Lock()
	n.targetID = id
	n.mu.Unlock()
}

// Settings returns the opaque packaging settings carried for this node.
func (n *Node) Settings() any {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.settings
}

// SetSettings records the opaque packaging settings for this node.
func (n *Node) SetSettings(s any) {
	n.mu.Lock()
	n.settings = s
	n.mu.Unlock()
}

// Resolve tries to bind one of this node's unresolved references to the
// candidate project. For each unresolved ref the declared path is joined to
// this project's root and canonicalized; on a match with the candidate's
// canonical location the ref is bound, the candidate learns about this node
// as a dependent, the flattened list is recomputed and the bound ref is
// returned.
//
// At most one ref is bound per call. No match is not an error: the result is
// nil. Canonicalization failures make the affected ref non-matching and are
// not surfaced.
func (n *Node) Resolve(candidate *Node) *LibraryRef {
	candLoc, err := n.paths.Canonical(candidate.project.Location())
	if err != nil {
		return nil
	}

	n.mu.Lock()
	var match *LibraryRef
	for _, r := range n.refs {
		if r.resolved != nil {
			continue
		}
		abs, err := n.paths.Canonical(filepath.Join(n.project.Location(), r.relPath))
		if err != nil {
			continue
		}
		if abs == candLoc {
			match = r
			break
		}
	}
	if match == nil {
		n.mu.Unlock()
		return nil
	}
	match.resolved = candidate
	match.location = candLoc
	n.refreshFlatLocked()
	n.mu.Unlock()

	candidate.addParent(n)
	return match
}

// DependsOn reports whether some reference of this node is resolved to the
// given project. Unresolved declarations do not count.
func (n *Node) DependsOn(other *Node) bool {
	if other == nil {
		return false
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, r := range n.refs {
		if r.resolved != nil && SameProject(r.resolved.project, other.project) {
			return true
		}
	}
	return false
}

// RefFor returns the reference resolved to the given project, or nil if no
// reference is bound to it.
func (n *Node) RefFor(p Project) *LibraryRef {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, r := range n.refs {
		if r.resolved != nil && SameProject(r.resolved.project, p) {
			return r
		}
	}
	return nil
}

// RefNamed returns the reference resolved to the project with the given
// name, or nil.
func (n *Node) RefNamed(name string) *LibraryRef {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, r := range n.refs {
		if r.resolved != nil && r.resolved.project.Name() == name {
			return r
		}
	}
	return nil
}

// Parents returns the nodes currently depending on this node. The set is a
// non-owning back-reference maintained by Resolve/Close; it exists so a
// library going away can reach its dependents, nothing more.
func (n *Node) Parents() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.parents)
}

func (n *Node) addParent(p *Node) {
	n.mu.Lock()
	n.parents = append(n.parents, p)
	n.mu.Unlock()
}

func (n *Node) removeParent(p *Node) {
	n.mu.Lock()
	for i, cur := range n.parents {
		if cur == p {
			n.parents = slices.Delete(n.parents, i, i+1)
			break
		}
	}
	n.mu.Unlock()
}

// SaveProperties persists the project's property source.
func (n *Node) SaveProperties() error {
	if err := n.props.Save(); err != nil {
		return zerr.With(zerr.Wrap(err, ErrSaveFailed.Error()),
			"project", n.project.Name())
	}
	return nil
}

// Hash returns a stable hash of the project identity, pairing with
// SameProject for use in external collections.
func (n *Node) Hash() uint64 {
	return xxhash.Sum64String(n.project.Location())
}

// Equal reports whether other wraps the same project.
func (n *Node) Equal(other *Node) bool {
	return other != nil && SameProject(n.project, other.project)
}

func (n *Node) String() string {
	return n.project.Name()
}
