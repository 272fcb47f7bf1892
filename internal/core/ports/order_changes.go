package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// ChangeEvent is one message from the push channel: either a partial order
// record or a transport error. Transport errors do not end the subscription.
type ChangeEvent struct {
	Change order.Change
	Err    error
}

// OrderChangeFeed opens push subscriptions scoped to a single order.
type OrderChangeFeed interface {
	Subscribe(ctx context.Context, orderID kernel.UUID) (Subscription, error)
}

// Subscription delivers events in the order the transport received them.
// Events is closed after Close returns.
type Subscription interface {
	Events() <-chan ChangeEvent
	Close() error
}

// OrderChangePublisher fans a persisted change out to live subscribers.
type OrderChangePublisher interface {
	PublishChange(ctx context.Context, orderID kernel.UUID, change order.Change) error
}
