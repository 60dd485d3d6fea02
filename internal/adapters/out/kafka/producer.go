// Package kafka publishes order-changed events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// messageWriter is the subset of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedMessage is the JSON payload of an order.changed event.
type OrderChangedMessage struct {
	SessionID      string    `json:"sessionId"`
	OrderID        string    `json:"orderId"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"shippingStatus"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Reason         string    `json:"reason"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// OrderChangedProducer implements ports.OrderEventPublisher. Messages are
// keyed by session ID so every event of one order lands on one partition.
type OrderChangedProducer struct {
	writer messageWriter
	tracer trace.Tracer
}

// NewOrderChangedProducer creates a producer writing to topic on brokers.
func NewOrderChangedProducer(brokers []string, topic string) *OrderChangedProducer {
	return newOrderChangedProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	})
}

func newOrderChangedProducer(writer messageWriter) *OrderChangedProducer {
	return &OrderChangedProducer{
		writer: writer,
		tracer: otel.Tracer("kafka-producer"),
	}
}

// Publish writes event synchronously. The trace context of ctx travels in the
// message headers.
func (p *OrderChangedProducer) Publish(ctx context.Context, event order.ChangedEvent) error {
	ctx, span := p.tracer.Start(ctx, "Producer.Publish", trace.WithAttributes(
		attribute.String("order.id", event.OrderID),
		attribute.String("order.change_reason", string(event.Reason)),
	))
	defer span.End()

	msg := OrderChangedMessage{
		SessionID:      event.SessionID,
		OrderID:        event.OrderID,
		TrackingNumber: event.TrackingNumber,
		Status:         event.Status.String(),
		Reason:         string(event.Reason),
		OccurredAt:     event.OccurredAt.UTC(),
	}
	if event.PreviousStatus != order.Unknown {
		msg.PreviousStatus = event.PreviousStatus.String()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := make([]kafka.Header, 0, len(carrier))
	for _, key := range carrier.Keys() {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(carrier.Get(key))})
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.SessionID),
		Value:   data,
		Headers: headers,
		Time:    event.OccurredAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (p *OrderChangedProducer) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, order.ChangedEvent) error {
	return nil
}
