// Package kafka publishes order domain events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ordermanager/internal/core/domain/model/order"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/propagation"
)

const traceparentHeader = "traceparent"

// producer is the part of *kgo.Client the publisher needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// OrderChangedMessage is the JSON payload of one record.
type OrderChangedMessage struct {
	OrderID    string    `json:"order_id"`
	Event      string    `json:"event"`
	FromState  string    `json:"from_state,omitempty"`
	ToState    string    `json:"to_state"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher implements ports.EventPublisher. Records are keyed by order id so
// the changes of one order stay in one partition.
type Publisher struct {
	client producer
	topic  string
}

// NewPublisher connects to brokers and produces to topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka: topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("ordermanager"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}

	return &Publisher{client: client, topic: topic}, nil
}

func newPublisherWithProducer(client producer, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// Publish sends one record per change and waits for every acknowledgement.
func (p *Publisher) Publish(ctx context.Context, changes ...order.Changed) error {
	if len(changes) == 0 {
		return nil
	}

	headers := traceHeaders(ctx)
	records := make([]*kgo.Record, 0, len(changes))
	for _, change := range changes {
		value, err := json.Marshal(toMessage(change))
		if err != nil {
			return fmt.Errorf("kafka: encode %s for order %s: %w", change.Event, change.OrderID, err)
		}
		records = append(records, &kgo.Record{
			Topic:   p.topic,
			Key:     []byte(change.OrderID.String()),
			Value:   value,
			Headers: headers,
		})
	}

	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce %d records: %w", len(records), err)
	}
	return nil
}

// Close releases the client.
func (p *Publisher) Close() {
	p.client.Close()
}

func toMessage(change order.Changed) OrderChangedMessage {
	return OrderChangedMessage{
		OrderID:    change.OrderID.String(),
		Event:      string(change.Event),
		FromState:  string(change.From),
		ToState:    string(change.To),
		Amount:     change.Amount,
		OccurredAt: change.OccurredAt.UTC(),
	}
}

func traceHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)

	traceparent, ok := carrier[traceparentHeader]
	if !ok {
		return nil
	}
	return []kgo.RecordHeader{{Key: traceparentHeader, Value: []byte(traceparent)}}
}
