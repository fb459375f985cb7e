package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/libref/internal/adapters/telemetry/progrock"
)

func TestRecorder_SpanLifecycle(t *testing.T) {
	recorder := progrock.New()
	require.NotNil(t, recorder)

	_, span := recorder.Start(context.Background(), "workspace scan")
	require.NotNil(t, span)

	span.SetAttribute("projects", 2)
	span.End()

	assert.NoError(t, recorder.Close())
}
