// Package app implements the application layer for libref.
package app

import (
	"go.trai.ch/libref/internal/core/ports"
	"go.trai.ch/libref/internal/engine/registry"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Registry *registry.Registry
}
