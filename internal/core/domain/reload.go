package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// ReloadDiff describes how the declared reference set changed across a
// Reload. It is produced once per call and meant to be consumed immediately.
type ReloadDiff struct {
	// Removed holds the refs that were declared before the reload and are
	// gone after it, with whatever resolution state they still carry.
	Removed []*LibraryRef

	// Added is set when at least one new declaration appeared.
	Added bool
}

// HasDiff reports whether the reload changed the declared reference set.
func (d ReloadDiff) HasDiff() bool {
	return d.Added || len(d.Removed) > 0
}

// Reload re-reads the declared references from the property source and
// reconciles them with the current set. A declaration whose normalized path
// matches an existing ref reuses that ref, keeping its resolution, at the
// new position; anything else becomes a fresh unresolved ref and sets the
// Added flag. Refs not matched by any new declaration are reported as
// removed. The cached platform target association is cleared, since it may
// be stale, and the flattened list is recomputed.
//
// The caller owns the follow-up: re-resolving added refs and severing the
// back-links of removed ones (typically by closing them).
func (n *Node) Reload() (ReloadDiff, error) {
	var diff ReloadDiff

	if err := n.props.Reload(); err != nil {
		return diff, zerr.With(zerr.Wrap(err, ErrReloadFailed.Error()),
			"project", n.project.Name())
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.targetID = ""

	old := slices.Clone(n.refs)
	var next []*LibraryRef
	for i := 1; ; i++ {
		v, ok := n.props.Get(refKey(i))
		if !ok {
			break
		}
		declared := platformPath(v)
		found := false
		for j, r := range old {
			if normalizePath(r.relPath) == normalizePath(declared) {
				next = append(next, r)
				old = append(old[:j], old[j+1:]...)
				found = true
				break
			}
		}
		if !found {
			diff.Added = true
			next = append(next, newRef(n, declared))
		}
	}

	// Whatever was not matched is gone from the declarations.
	diff.Removed = old

	n.refs = next
	n.refreshFlatLocked()

	return diff, nil
}
