// Package memory provides a queue-backed notification sender used in tests
// and embedded deployments; deliveries are published to an in-memory queue
// that a consumer drains at its own pace.
package memory

import (
	"context"

	"github.com/opsfabric/warden/service/messaging"
	qmem "github.com/opsfabric/warden/service/messaging/memory"
	"github.com/opsfabric/warden/service/notification"
)

// Delivery pairs a card with its recipients.
type Delivery struct {
	Card       *notification.Card `json:"card"`
	Recipients []string           `json:"recipients"`
}

// Service is an in-memory notification.Sender.
type Service struct {
	queue *qmem.Queue[Delivery]
}

// New creates a queue-backed sender.
func New() *Service {
	return &Service{queue: qmem.NewQueue[Delivery](qmem.DefaultConfig())}
}

// Send implements notification.Sender.
func (s *Service) Send(ctx context.Context, card *notification.Card, recipients []string) error {
	return s.queue.Publish(ctx, &Delivery{Card: card, Recipients: append([]string(nil), recipients...)})
}

// Queue exposes the delivery queue for consumers.
func (s *Service) Queue() messaging.Queue[Delivery] { return s.queue }

var _ notification.Sender = (*Service)(nil)
