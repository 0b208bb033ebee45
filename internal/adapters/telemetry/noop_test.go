package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.husk.sh/husk/internal/adapters/telemetry"
)

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(context.Background(), "test-span")
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	span.End()
}

func TestNoOpSpan_Methods(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	_, span := tracer.Start(context.Background(), "test")

	span.SetAttribute("key", "value")
	span.SetAttribute("int", 123)
	span.RecordError(errors.New("test error"))

	n, err := span.Write([]byte("test log data"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	span.End()
}
