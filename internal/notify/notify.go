// Package notify delivers user-facing messages. Delivery is
// fire-and-forget: a failed send is the caller's warning to log, never a
// reason to revert a committed booking mutation.
package notify

import (
	"context"

	"github.com/Domenick1991/tripbooking/internal/kafka"
)

type Notifier interface {
	Notify(ctx context.Context, uid, message string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// KafkaNotifier publishes notification events to a topic consumed by the
// worker process.
type KafkaNotifier struct {
	producer Producer
	topic    string
}

func NewKafkaNotifier(producer Producer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (n *KafkaNotifier) Notify(ctx context.Context, uid, message string) error {
	event := kafka.NotificationEvent{
		Message: message,
		UID:     uid,
	}
	return n.producer.Publish(ctx, n.topic, uid, event)
}

var _ Notifier = (*KafkaNotifier)(nil)
