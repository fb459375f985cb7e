// Package domain contains the core model for tracking library references
// between open projects and deriving the packaging dependency order.
package domain

// Workspace is the set of project directories declared by a workspace
// manifest.
type Workspace struct {
	// Root is the directory the manifest lives in.
	Root string

	// Projects holds the absolute project directories, in manifest order.
	Projects []string
}
