package ports

import (
	"context"

	"foodorder/internal/core/domain/model/order"
)

// OrderEventPublisher notifies the restaurant side about placed orders.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, placed *order.Order) error
}
