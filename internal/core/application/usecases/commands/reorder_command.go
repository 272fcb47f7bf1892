package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrReorderCommandIsNotConstructed = errors.New(
	"ReorderCommand must be created via NewReorderCommand constructor",
)

// ReorderCommand copies the items of a past order into the session cart.
type ReorderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	orderID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewReorderCommand(customerID, orderID kernel.UUID) (ReorderCommand, error) {
	cmd := ReorderCommand{guard: guard.NewConstructorGuard()}

	var problems []error
	if err := setCustomer(&cmd.customerID, customerID); err != nil {
		problems = append(problems, err)
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if err := errors.Join(problems...); err != nil {
		return ReorderCommand{}, err
	}

	cmd.orderID = orderID
	return cmd, nil
}

func (c ReorderCommand) Validate() error {
	return c.guard.Validate(ErrReorderCommandIsNotConstructed)
}

func (c ReorderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c ReorderCommand) OrderID() kernel.UUID {
	return c.orderID
}
