package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand turns a session cart into an order. The customer comes
// from the authenticated session; amounts are never taken from the caller.
//
// Example:
//
//	address, _ := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701")
//	cmd, err := NewSubmitOrderCommand(customerID, sessionCart, order.Checkout{
//	    Address:       address,
//	    PaymentMethod: "card",
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	cart       *cart.Cart
	checkout   order.Checkout

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand checks the session identity, a non-empty cart and a
// complete address. Minimum order is checked by the handler against the
// stored restaurant.
func NewSubmitOrderCommand(customerID kernel.UUID, c *cart.Cart, checkout order.Checkout) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		checkout: checkout,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setCart(c),
		checkout.Address.Validate(),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c SubmitOrderCommand) Cart() *cart.Cart {
	return c.cart
}

func (c SubmitOrderCommand) Checkout() order.Checkout {
	return c.checkout
}

func (c *SubmitOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	c.customerID = customerID
	return nil
}

func (c *SubmitOrderCommand) setCart(sessionCart *cart.Cart) error {
	if sessionCart == nil || sessionCart.IsEmpty() {
		return order.ErrEmptyCart
	}
	c.cart = sessionCart
	return nil
}
