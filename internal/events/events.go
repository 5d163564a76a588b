// Package events publishes appointment lifecycle changes for downstream
// consumers (reminders, notifications).
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
)

const HeaderEventType = "event-type"

type Event struct {
	Type         string    `json:"type"`
	BarbershopID uint      `json:"barbershop_id"`
	UserID       *uint     `json:"user_id,omitempty"`
	EntityID     *uint     `json:"appointment_id,omitempty"`
	Data         any       `json:"data,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// ===============================
// Kafka
// ===============================

type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	msg, err := Message(ctx, ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// Message encodes ev keyed by barbershop, so one shop's events stay ordered
// within a partition.
func Message(ctx context.Context, ev Event) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}

	carrier := &headerCarrier{headers: []kafka.Header{
		{Key: HeaderEventType, Value: []byte(ev.Type)},
	}}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	return kafka.Message{
		Key:     []byte(strconv.FormatUint(uint64(ev.BarbershopID), 10)),
		Value:   value,
		Headers: carrier.headers,
		Time:    ev.OccurredAt,
	}, nil
}

// Nop drops everything. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// ===============================
// Audit bridge
// ===============================

// AuditSink forwards appointment lifecycle audit events to a Publisher.
type AuditSink struct {
	pub Publisher
}

func NewAuditSink(pub Publisher) *AuditSink {
	return &AuditSink{pub: pub}
}

func (s *AuditSink) Handle(ctx context.Context, ev audit.Event) error {
	if !strings.HasPrefix(ev.Action, "appointment_") {
		return nil
	}
	return s.pub.Publish(ctx, Event{
		Type:         ev.Action,
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		EntityID:     ev.EntityID,
		Data:         ev.Metadata,
		RequestID:    ev.RequestID,
		OccurredAt:   ev.OccurredAt,
	})
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
