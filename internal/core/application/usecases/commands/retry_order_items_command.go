package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrRetryOrderItemsCommandIsNotConstructed = errors.New(
	"RetryOrderItemsCommand must be created via NewRetryOrderItemsCommand constructor",
)

// RetryOrderItemsCommand writes the items of a header left behind by a
// partial write. The cart must be the one the header was priced from.
type RetryOrderItemsCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	orderID    kernel.UUID
	cart       *cart.Cart

	guard guard.ConstructorGuard
}

func NewRetryOrderItemsCommand(customerID, orderID kernel.UUID, c *cart.Cart) (RetryOrderItemsCommand, error) {
	cmd := RetryOrderItemsCommand{guard: guard.NewConstructorGuard()}

	var problems []error
	if err := customerID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("customer id", err))
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if c == nil || c.IsEmpty() {
		problems = append(problems, order.ErrEmptyCart)
	}
	if err := errors.Join(problems...); err != nil {
		return RetryOrderItemsCommand{}, err
	}

	cmd.customerID = customerID
	cmd.orderID = orderID
	cmd.cart = c
	return cmd, nil
}

func (c RetryOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrRetryOrderItemsCommandIsNotConstructed)
}

func (c RetryOrderItemsCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c RetryOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RetryOrderItemsCommand) Cart() *cart.Cart {
	return c.cart
}
