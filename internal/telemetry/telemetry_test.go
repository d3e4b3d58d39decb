package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), "charitybridge", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTraceExporter_RejectsHostlessURL(t *testing.T) {
	_, err := newTraceExporter(context.Background(), "http://")
	assert.Error(t, err)
}

func TestTracerIsUsableBeforeInit(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "noop")
	span.End()
}
