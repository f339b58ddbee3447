// Package kafka implements the realtime event bus on a Kafka topic.
// Live gateway instances consume the topic and forward events to their
// connected clients; the scope travels as the message key so events for
// one scope stay ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher implements ports.EventBus on a kafka.Writer. The writer is
// asynchronous: Publish enqueues and returns, so a slow broker never
// stalls the request path that emitted the event. Delivery failures
// surface through the writer's completion callback and are logged.
type Publisher struct {
	w      *kafka.Writer
	logger *zap.Logger
}

// NewPublisher creates an event bus publisher. brokersSTR is a
// comma-separated broker list.
func NewPublisher(brokersSTR string, topic string, logger *zap.Logger) *Publisher {
	brokers := strings.Split(brokersSTR, ",")

	p := &Publisher{logger: logger}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		Completion:   p.onCompletion,
	}

	return p
}

// Close flushes pending messages and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

// Publish emits one event to the scope. The event name travels in a
// header so consumers can route without decoding the payload. The write
// is enqueued, not awaited; the only synchronous failure is payload
// serialization.
func (p *Publisher) Publish(ctx context.Context, scope string, event string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(scope),
		Value: b,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event)},
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}

func (p *Publisher) onCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, msg := range messages {
		p.logger.Warn("event delivery failed",
			zap.String("scope", string(msg.Key)),
			zap.Error(err),
		)
	}
}
