package ports

import "go.trai.ch/libref/internal/core/domain"

// WorkspaceLoader reads the workspace manifest that lists open projects.
//
//go:generate mockgen -source=workspace_loader.go -destination=mocks/mock_workspace_loader.go -package=mocks
type WorkspaceLoader interface {
	// Load reads the manifest at path and returns the declared workspace.
	Load(path string) (*domain.Workspace, error)
}
