package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrApplyOrderChangeCommandIsNotConstructed = errors.New(
	"ApplyOrderChangeCommand must be created via NewApplyOrderChangeCommand constructor",
)

// ApplyOrderChangeCommand carries a fulfillment-side update for one order.
type ApplyOrderChangeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	change  order.Change

	guard guard.ConstructorGuard
}

func NewApplyOrderChangeCommand(orderID kernel.UUID, change order.Change) (ApplyOrderChangeCommand, error) {
	cmd := ApplyOrderChangeCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setChange(change),
	); err != nil {
		return ApplyOrderChangeCommand{}, err
	}

	return cmd, nil
}

func (c ApplyOrderChangeCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderChangeCommandIsNotConstructed)
}

func (c ApplyOrderChangeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyOrderChangeCommand) Change() order.Change {
	return c.change
}

func (c *ApplyOrderChangeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ApplyOrderChangeCommand) setChange(change order.Change) error {
	if change.IsEmpty() {
		return errs.NewValueIsRequiredError("order change")
	}
	c.change = change
	return nil
}
