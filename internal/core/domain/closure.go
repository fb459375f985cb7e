package domain

import "slices"

// FullDependencies returns the flattened dependency list: every resolved
// direct and indirect library project, deduplicated, ordered by descending
// packaging priority (index 0 is consumed first by the packager).
//
// The list is a cache; it is recomputed from scratch on every event that
// changes resolution state (bind, unbind, reload, path rewrite) and is never
// nil.
func (n *Node) FullDependencies() []Project {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.flat)
}

// RefreshDependencies recomputes the flattened dependency list from the
// current resolution state. Mutations on this node refresh it themselves;
// this is for dependents of a node whose own resolution state changed,
// reached through the parents back-links.
func (n *Node) RefreshDependencies() {
	n.mu.Lock()
	n.refreshFlatLocked()
	n.mu.Unlock()
}

// refreshFlatLocked recomputes the flattened dependency list. The caller
// holds n.mu.
//
// The walk processes the declared references in reverse declaration order.
// For each resolved ref it first merges the target's own dependencies, then
// inserts the target's project at the front unless already present; the
// first occurrence keeps its position. The result is that indirect
// dependencies rank behind the library that introduced them while every
// insertion pushes in front of earlier-processed declarations.
func (n *Node) refreshFlatLocked() {
	targets := make([]*Node, len(n.refs))
	for i, r := range n.refs {
		targets[i] = r.resolved
	}
	// The node itself seeds the in-progress set so a reference cycle back
	// to it cannot recurse forever. For acyclic graphs the guard never
	// fires with an effect: a node is only appended after its entire
	// closure is already present, so skipping a revisit loses nothing.
	visiting := map[*Node]bool{n: true}
	n.flat = appendClosure(targets, []Project{}, visiting)
}

// appendClosure merges the closure of the given per-declaration resolution
// targets (nil entries are unresolved declarations) into out and returns it.
func appendClosure(targets []*Node, out []Project, visiting map[*Node]bool) []Project {
	for i := len(targets) - 1; i >= 0; i-- {
		t := targets[i]
		if t == nil || visiting[t] {
			continue
		}
		visiting[t] = true
		out = appendClosure(t.resolutionTargets(), out, visiting)
		delete(visiting, t)

		if !containsProject(out, t.project) {
			out = slices.Insert(out, 0, t.project)
		}
	}
	return out
}

// resolutionTargets snapshots the per-declaration resolution targets of n.
// It takes n's lock only for the copy, releasing it before the caller
// recurses further, so at most two node locks are ever held at once and
// always in dependent-before-dependency acquisition order.
func (n *Node) resolutionTargets() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	targets := make([]*Node, len(n.refs))
	for i, r := range n.refs {
		targets[i] = r.resolved
	}
	return targets
}

func containsProject(list []Project, p Project) bool {
	for _, cur := range list {
		if SameProject(cur, p) {
			return true
		}
	}
	return false
}
