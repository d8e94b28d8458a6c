package notification

import (
	"context"
	"encoding/json"

	"github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molsketch/pkg/errors"
)

// Publisher is the subset of kafka.Producer used by KafkaNotifier.
type Publisher interface {
	Publish(ctx context.Context, msg *kafka.Message) error
	Close() error
}

// KafkaNotifier publishes change events to a topic, keyed by session so a
// session's events stay ordered within one partition.
type KafkaNotifier struct {
	publisher Publisher
	topic     string
}

func NewKafkaNotifier(publisher Publisher, topic string) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, topic: topic}
}

func (n *KafkaNotifier) Name() string { return "kafka" }

func (n *KafkaNotifier) Notify(ctx context.Context, event sketch.ChangeEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode change event")
	}
	return n.publisher.Publish(ctx, &kafka.Message{
		Topic: n.topic,
		Key:   []byte(event.SessionID),
		Value: value,
		Headers: map[string]string{
			"event_type": event.EventType(),
			"effect":     event.Effect,
		},
		Timestamp: event.OccurredAt,
	})
}

func (n *KafkaNotifier) Close() error {
	return n.publisher.Close()
}

//Personal.AI order the ending
