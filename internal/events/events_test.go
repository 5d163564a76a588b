package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
)

type capture struct {
	events []Event
}

func (c *capture) Publish(_ context.Context, ev Event) error {
	c.events = append(c.events, ev)
	return nil
}

func (c *capture) Close() error { return nil }

func TestMessage_KeyHeadersAndTrace(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	id := uint(42)
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	msg, err := Message(ctx, Event{
		Type:         "appointment_created",
		BarbershopID: 7,
		EntityID:     &id,
		OccurredAt:   at,
	})
	require.NoError(t, err)

	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	carrier := &headerCarrier{headers: msg.Headers}
	assert.Equal(t, "appointment_created", carrier.Get(HeaderEventType))
	assert.Contains(t, carrier.Get("traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, float64(42), decoded["appointment_id"])
}

func TestAuditSink_FiltersLifecycle(t *testing.T) {
	pub := &capture{}
	sink := NewAuditSink(pub)
	ctx := context.Background()

	require.NoError(t, sink.Handle(ctx, audit.Event{Action: "working_hours_updated"}))
	require.NoError(t, sink.Handle(ctx, audit.Event{
		BarbershopID: 1,
		Action:       "appointment_canceled",
		Metadata:     map[string]string{"status": "canceled"},
		RequestID:    "abc",
	}))

	require.Len(t, pub.events, 1)
	assert.Equal(t, "appointment_canceled", pub.events[0].Type)
	assert.Equal(t, "abc", pub.events[0].RequestID)

	assert.NoError(t, Nop{}.Publish(ctx, Event{}))
}
