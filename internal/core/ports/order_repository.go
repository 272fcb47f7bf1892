// Package ports defines the contracts between the order pipeline and its
// infrastructure: relational storage, the session cart store, the order
// change push channel and the outbound event stream.
package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderRepository persists order headers and their items. Headers and items
// are written by separate calls so that submission can report a header
// whose items never landed.
type OrderRepository interface {
	// Add inserts the order header only. A duplicate order number fails.
	Add(ctx context.Context, aggregate *order.Order) error

	// AddItems inserts every item of one order in a single statement.
	AddItems(ctx context.Context, orderID kernel.UUID, items []*order.Item) error

	// Update writes the mutable header columns (status, payment status,
	// delivery times, instructions, updated_at).
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads a header by id. Missing rows yield *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Items loads the items of one order in cart line order.
	Items(ctx context.Context, orderID kernel.UUID) ([]*order.Item, error)

	// HasItems reports whether at least one item exists for the order.
	HasItems(ctx context.Context, orderID kernel.UUID) (bool, error)
}
