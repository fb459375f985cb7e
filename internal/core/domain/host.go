package domain

// Host-side collaborators. The core never owns the workspace, the project
// handles or the property-file format; it consumes them through these
// interfaces.

//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks

// Project identifies an open project in the host workspace.
type Project interface {
	// Name returns the project's display name.
	Name() string

	// Location returns the absolute filesystem root of the project.
	Location() string
}

// PropertySource is a string-keyed configuration store backing a project,
// typically a project.properties file.
type PropertySource interface {
	// Get returns the value for key and whether it is present.
	Get(key string) (string, bool)

	// Set stores value under key in memory. It does not persist.
	Set(key, value string)

	// Save persists the current state.
	Save() error

	// Reload re-reads the state from its backing store, discarding
	// unsaved in-memory changes.
	Reload() error
}

// PathResolver canonicalizes filesystem paths for dependency matching.
type PathResolver interface {
	// Canonical returns the canonical form of path: absolute, cleaned of
	// relative segments, with symlinks resolved.
	Canonical(path string) (string, error)
}

// SameProject reports whether two project handles identify the same project.
// Identity is the project's filesystem location, which is what dependency
// matching is keyed on everywhere else.
func SameProject(a, b Project) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Location() == b.Location()
}
