package queries

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// CartView is the priced session cart. An absent cart is returned as an
// empty view with no restaurant.
type CartView struct {
	RestaurantID *kernel.UUID   `json:"restaurant_id"`
	Lines        []CartLineView `json:"lines"`
	Subtotal     kernel.Money   `json:"subtotal"`
	Tax          kernel.Money   `json:"tax"`
	DeliveryFee  kernel.Money   `json:"delivery_fee"`
	Total        kernel.Money   `json:"total"`
	MinimumOrder kernel.Money   `json:"minimum_order"`
	MeetsMinimum bool           `json:"meets_minimum"`
}

type CartLineView struct {
	MenuItemID          kernel.UUID  `json:"menu_item_id"`
	Name                string       `json:"name"`
	UnitPrice           kernel.Money `json:"unit_price"`
	Quantity            int          `json:"quantity"`
	Total               kernel.Money `json:"total"`
	SpecialInstructions string       `json:"special_instructions"`
}

type GetCartQueryHandler struct {
	carts       ports.CartStore
	restaurants ports.RestaurantRepository
}

func NewGetCartQueryHandler(carts ports.CartStore, restaurants ports.RestaurantRepository) GetCartQueryHandler {
	return GetCartQueryHandler{carts: carts, restaurants: restaurants}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (CartView, error) {
	if err := query.Validate(); err != nil {
		return CartView{}, err
	}

	c, err := h.carts.Get(ctx, query.CustomerID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return emptyCartView(), nil
		}
		return CartView{}, err
	}

	r, err := h.restaurants.Get(ctx, c.RestaurantID())
	if err != nil {
		return CartView{}, err
	}

	totals := c.Totals(r)
	restaurantID := c.RestaurantID()
	view := CartView{
		RestaurantID: &restaurantID,
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		DeliveryFee:  totals.DeliveryFee,
		Total:        totals.Total,
		MinimumOrder: r.MinimumOrder,
		MeetsMinimum: c.MeetsMinimum(r),
	}

	lines := c.Lines()
	view.Lines = make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		view.Lines = append(view.Lines, CartLineView{
			MenuItemID:          line.MenuItemID,
			Name:                line.Name,
			UnitPrice:           line.UnitPrice,
			Quantity:            line.Quantity,
			Total:               line.Total(),
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	return view, nil
}

func emptyCartView() CartView {
	zero := kernel.ZeroMoney()
	return CartView{
		Lines:        []CartLineView{},
		Subtotal:     zero,
		Tax:          zero,
		DeliveryFee:  zero,
		Total:        zero,
		MinimumOrder: zero,
	}
}
