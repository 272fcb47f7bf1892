package commands

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// AddCartItemCommandHandler prices cart lines from the stored menu, never
// from the request.
type AddCartItemCommandHandler struct {
	restaurants ports.RestaurantRepository
	carts       ports.CartStore
}

func NewAddCartItemCommandHandler(restaurants ports.RestaurantRepository, carts ports.CartStore) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{restaurants: restaurants, carts: carts}
}

// Handle starts a new cart for the item's restaurant when the customer has
// none. Items from another restaurant fail validation with
// cart.ErrRestaurantMismatch as the cause.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := h.restaurants.GetMenuItem(ctx, cmd.MenuItemID())
	if err != nil {
		return err
	}

	sessionCart, err := h.carts.Get(ctx, cmd.CustomerID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if sessionCart, err = cart.New(item.RestaurantID); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	if err = sessionCart.AddItem(item, cmd.Quantity(), cmd.SpecialInstructions()); err != nil {
		return err
	}

	return h.carts.Save(ctx, cmd.CustomerID(), sessionCart)
}

type SetCartItemQuantityCommandHandler struct {
	carts ports.CartStore
}

func NewSetCartItemQuantityCommandHandler(carts ports.CartStore) SetCartItemQuantityCommandHandler {
	return SetCartItemQuantityCommandHandler{carts: carts}
}

// Handle deletes the stored cart once its last line is removed.
func (h *SetCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd SetCartItemQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	sessionCart, err := h.carts.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = sessionCart.SetQuantity(cmd.MenuItemID(), cmd.Quantity()); err != nil {
		return err
	}

	if sessionCart.IsEmpty() {
		return h.carts.Delete(ctx, cmd.CustomerID())
	}
	return h.carts.Save(ctx, cmd.CustomerID(), sessionCart)
}

type ClearCartCommandHandler struct {
	carts ports.CartStore
}

func NewClearCartCommandHandler(carts ports.CartStore) ClearCartCommandHandler {
	return ClearCartCommandHandler{carts: carts}
}

func (h *ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.carts.Delete(ctx, cmd.CustomerID())
}
