package ports

import (
	"context"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
)

// CartStore keeps one cart per customer session between requests.
type CartStore interface {
	// Get returns *errs.ObjectNotFoundError when the customer has no cart.
	Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)
	Save(ctx context.Context, customerID kernel.UUID, c *cart.Cart) error
	Delete(ctx context.Context, customerID kernel.UUID) error
}
