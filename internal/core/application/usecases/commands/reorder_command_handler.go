package commands

import (
	"context"
	"errors"
	"log/slog"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// ErrNothingToReorder means none of the order's menu items can be bought today.
var ErrNothingToReorder = errors.New("no item of the order is available any more")

// ReorderResult lists the menu items copied into the cart and the ones left
// out because they are gone or unavailable.
type ReorderResult struct {
	RestaurantID kernel.UUID
	Added        []kernel.UUID
	Skipped      []kernel.UUID
}

type ReorderCommandHandler struct {
	uowFactory UoWFactory
	carts      ports.CartStore
	logger     *slog.Logger
}

func NewReorderCommandHandler(uowFactory UoWFactory, carts ports.CartStore, logger *slog.Logger) ReorderCommandHandler {
	return ReorderCommandHandler{
		uowFactory: uowFactory,
		carts:      carts,
		logger:     logger.With("component", "reorder"),
	}
}

// Handle adds the order's items to the session cart at today's menu prices.
// Quantities add up with lines already in the cart. A cart holding items of
// another restaurant is left untouched and the call fails validation.
func (h *ReorderCommandHandler) Handle(ctx context.Context, cmd ReorderCommand) (ReorderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReorderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReorderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	past, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return ReorderResult{}, err
	}
	if !past.CustomerID().IsEqual(cmd.CustomerID()) {
		return ReorderResult{}, errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	items, err := orders.Items(ctx, past.ID())
	if err != nil {
		return ReorderResult{}, err
	}

	sessionCart, err := h.sessionCart(ctx, cmd.CustomerID(), past.RestaurantID())
	if err != nil {
		return ReorderResult{}, err
	}

	result := ReorderResult{RestaurantID: past.RestaurantID()}
	restaurants := uow.RestaurantRepository()
	for _, item := range items {
		menuItem, menuErr := restaurants.GetMenuItem(ctx, item.MenuItemID())
		switch {
		case errors.Is(menuErr, errs.ErrObjectNotFound):
			result.Skipped = append(result.Skipped, item.MenuItemID())
			continue
		case menuErr != nil:
			return ReorderResult{}, menuErr
		}
		if !menuItem.IsAvailable || !menuItem.RestaurantID.IsEqual(past.RestaurantID()) {
			result.Skipped = append(result.Skipped, item.MenuItemID())
			continue
		}

		if err = sessionCart.AddItem(menuItem, item.Quantity(), item.SpecialInstructions()); err != nil {
			return ReorderResult{}, err
		}
		result.Added = append(result.Added, menuItem.ID)
	}

	if len(result.Added) == 0 {
		return ReorderResult{}, errs.NewValueIsInvalidErrorWithCause("order", ErrNothingToReorder)
	}

	if err = h.carts.Save(ctx, cmd.CustomerID(), sessionCart); err != nil {
		return ReorderResult{}, err
	}

	h.logger.InfoContext(ctx, "order items copied to cart",
		"order_id", past.ID().String(),
		"added", len(result.Added),
		"skipped", len(result.Skipped),
	)

	return result, nil
}

func (h *ReorderCommandHandler) sessionCart(ctx context.Context, customerID, restaurantID kernel.UUID) (*cart.Cart, error) {
	existing, err := h.carts.Get(ctx, customerID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return cart.New(restaurantID)
	case err != nil:
		return nil, err
	}

	if existing.IsEmpty() {
		return cart.New(restaurantID)
	}
	if !existing.RestaurantID().IsEqual(restaurantID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("cart", cart.ErrRestaurantMismatch)
	}
	return existing, nil
}
