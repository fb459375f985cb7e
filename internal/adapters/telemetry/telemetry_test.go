package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/libref/internal/adapters/telemetry"
)

func TestNoOpTracer_StartReturnsSpan(t *testing.T) {
	tracer := &telemetry.NoOpTracer{}

	ctx, span := tracer.Start(context.Background(), "scan")
	require.NotNil(t, span)
	assert.NotNil(t, ctx)

	// Must be safe to use without any backend.
	span.SetAttribute("projects", 3)
	span.End()
}

func TestNew_DefaultsToNoOp(t *testing.T) {
	t.Setenv("LIBREF_PROGRESS", "")

	tracer := telemetry.New()
	_, ok := tracer.(*telemetry.NoOpTracer)
	assert.True(t, ok)
}
