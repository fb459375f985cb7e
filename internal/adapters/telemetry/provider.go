package telemetry

import (
	"os"

	telprogrock "go.trai.ch/libref/internal/adapters/telemetry/progrock"
	"go.trai.ch/libref/internal/core/ports"
)

// New returns the tracer selected by the environment. When
// LIBREF_PROGRESS is set to "1" the progrock recorder is used,
// otherwise tracing is disabled.
func New() ports.Tracer {
	if os.Getenv("LIBREF_PROGRESS") == "1" {
		return telprogrock.New()
	}
	return &NoOpTracer{}
}
