// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/libref/internal/adapters/config"
	_ "go.trai.ch/libref/internal/adapters/fs"
	_ "go.trai.ch/libref/internal/adapters/logger"
	_ "go.trai.ch/libref/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/libref/internal/app"
	_ "go.trai.ch/libref/internal/engine/registry"
)
