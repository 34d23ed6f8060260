package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer)
}

func TestInitTracing_Stdout(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{Enabled: true, Exporter: "stdout", SamplerRatio: 1})
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "test.op", attribute.String("k", "v"))
	assert.NotNil(t, ctx)
	assert.NotEqual(t, "00000000000000000000000000000000", span.TraceID())
	span.End(errors.New("boom"))
}
