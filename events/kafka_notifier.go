package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"pookadai/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes order events for the email/SMS/WhatsApp workers
type KafkaNotifier struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewKafkaNotifier(brokers []string, topic string, logger *zap.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newKafkaNotifier(writer, topic, logger)
}

func newKafkaNotifier(writer messageWriter, topic string, logger *zap.Logger) *KafkaNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaNotifier{writer: writer, topic: topic, logger: logger}
}

// Notify writes event keyed by order id so every event of one order lands on the same partition
func (n *KafkaNotifier) Notify(ctx context.Context, event models.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte("ORDER#" + event.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s for order %s: %w", event.Type, event.OrderID, err)
	}

	n.logger.Debug("order event published",
		zap.String("topic", n.topic),
		zap.String("order_id", event.OrderID),
		zap.String("event_type", string(event.Type)))
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
