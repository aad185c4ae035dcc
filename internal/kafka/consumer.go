package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Domenick1991/lessonbooking/config"
	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume delivers decoded order events to handler until the context is
// canceled or handler fails. Messages that do not decode are logged and
// skipped so one bad payload cannot wedge the group.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, OrderEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeOrderEvent(msg.Value)
		if err != nil {
			log.Printf("decode order event: %v", err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeOrderEvent(value []byte) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return OrderEvent{}, err
	}
	return event, nil
}
