package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false, ServiceName: "test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")

	_, span := StartSpan(context.Background(), "noop", attribute.Int("barber_id", 1))
	span.End()
}
