package domain

import "go.trai.ch/zerr"

var (
	// ErrSaveFailed is returned when persisting a project's properties fails.
	ErrSaveFailed = zerr.New("failed to save project properties")

	// ErrReloadFailed is returned when re-reading a project's properties fails.
	ErrReloadFailed = zerr.New("failed to reload project properties")

	// ErrRefKeyNotFound is returned when no sequential reference key holds
	// the declared path that should be rewritten.
	ErrRefKeyNotFound = zerr.New("declared reference key not found")

	// ErrRefNotDeclared is returned when a rewrite names a path no
	// unresolved reference declares.
	ErrRefNotDeclared = zerr.New("no unresolved reference declares the given path")

	// ErrProjectAlreadyOpen is returned when opening a project whose
	// location is already tracked.
	ErrProjectAlreadyOpen = zerr.New("project already open")

	// ErrProjectNotOpen is returned when an operation names a project that
	// is not tracked.
	ErrProjectNotOpen = zerr.New("project not open")

	// ErrTargetNotOpen is returned when a library move points at a
	// location with no open project.
	ErrTargetNotOpen = zerr.New("target library project not open")

	// ErrManifestReadFailed is returned when the workspace manifest cannot
	// be read.
	ErrManifestReadFailed = zerr.New("failed to read workspace manifest")

	// ErrManifestParseFailed is returned when the workspace manifest cannot
	// be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse workspace manifest")

	// ErrNoProjectsDeclared is returned when the workspace manifest lists
	// no projects.
	ErrNoProjectsDeclared = zerr.New("workspace manifest declares no projects")

	// ErrProjectLoadFailed is returned when a project directory cannot be
	// loaded during a workspace scan.
	ErrProjectLoadFailed = zerr.New("failed to load project")
)
