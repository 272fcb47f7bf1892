package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrSetCartItemQuantityCommandIsNotConstructed = errors.New(
		"SetCartItemQuantityCommand must be created via NewSetCartItemQuantityCommand constructor",
	)
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
)

// AddCartItemCommand adds quantity units of a menu item to the session cart.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID          kernel.UUID
	menuItemID          kernel.UUID
	quantity            int
	specialInstructions string

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(
	customerID, menuItemID kernel.UUID,
	quantity int,
	specialInstructions string,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCustomer(&cmd.customerID, customerID),
		setMenuItem(&cmd.menuItemID, menuItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c AddCartItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c AddCartItemCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	c.quantity = quantity
	return nil
}

// SetCartItemQuantityCommand sets a line's quantity; 0 removes the line.
type SetCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	menuItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewSetCartItemQuantityCommand(customerID, menuItemID kernel.UUID, quantity int) (SetCartItemQuantityCommand, error) {
	cmd := SetCartItemQuantityCommand{guard: guard.NewConstructorGuard()}

	var quantityErr error
	if quantity < 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	if err := errors.Join(
		setCustomer(&cmd.customerID, customerID),
		setMenuItem(&cmd.menuItemID, menuItemID),
		quantityErr,
	); err != nil {
		return SetCartItemQuantityCommand{}, err
	}

	cmd.quantity = quantity
	return cmd, nil
}

func (c SetCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemQuantityCommandIsNotConstructed)
}

func (c SetCartItemQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c SetCartItemQuantityCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

func (c SetCartItemQuantityCommand) Quantity() int {
	return c.quantity
}

// ClearCartCommand drops the session cart, e.g. after a successful submission.
type ClearCartCommand struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearCartCommand(customerID kernel.UUID) (ClearCartCommand, error) {
	cmd := ClearCartCommand{guard: guard.NewConstructorGuard()}
	if err := setCustomer(&cmd.customerID, customerID); err != nil {
		return ClearCartCommand{}, err
	}
	return cmd, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func setCustomer(dst *kernel.UUID, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	*dst = customerID
	return nil
}

func setMenuItem(dst *kernel.UUID, menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("menu item id", err)
	}
	*dst = menuItemID
	return nil
}
