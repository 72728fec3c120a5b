package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/tripbooking/internal/kafka"
)

// Sender is the worker-side delivery channel. The real system would
// hand events to an email or push gateway here.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Deliver(ctx context.Context, event kafka.NotificationEvent) error {
	fmt.Printf("notify user %s: %s\n", event.UID, event.Message)
	return nil
}
