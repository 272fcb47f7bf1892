package cart

import (
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/restaurant"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TaxRate is the fixed sales tax applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.08")

var (
	ErrRestaurantMismatch = errors.New("menu item belongs to a different restaurant than the cart")
	ErrItemUnavailable    = errors.New("menu item is not available")
)

// Line is one menu item in the cart. Quantity is always at least 1;
// a line whose quantity drops to 0 is removed.
type Line struct {
	MenuItemID          kernel.UUID
	Name                string
	UnitPrice           kernel.Money
	Quantity            int
	SpecialInstructions string
}

// Total returns UnitPrice × Quantity.
func (l Line) Total() kernel.Money {
	return l.UnitPrice.Times(l.Quantity)
}

// Totals is derived from the lines on every call and never stored.
type Totals struct {
	Subtotal    kernel.Money
	Tax         kernel.Money
	DeliveryFee kernel.Money
	Total       kernel.Money
}

// Cart is the checkout session's line collection for exactly one restaurant.
// It is owned by a single session and is not safe for concurrent mutation.
type Cart struct {
	restaurantID kernel.UUID
	lines        []Line
}

// New creates an empty cart scoped to restaurantID.
func New(restaurantID kernel.UUID) (*Cart, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}
	return &Cart{restaurantID: restaurantID}, nil
}

func (c *Cart) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddItem increments the line for item.ID or appends a new one.
// Special instructions are only taken from the call that creates the line
// unless a later call supplies non-empty ones.
func (c *Cart) AddItem(item restaurant.MenuItem, quantity int, specialInstructions string) error {
	if !item.RestaurantID.IsEqual(c.restaurantID) {
		return errs.NewValueIsInvalidErrorWithCause("menu item", ErrRestaurantMismatch)
	}
	if !item.IsAvailable {
		return errs.NewValueIsInvalidErrorWithCause("menu item", ErrItemUnavailable)
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if err := item.ID.Validate(); err != nil {
		return err
	}

	instructions := strings.TrimSpace(specialInstructions)
	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		if instructions != "" {
			c.lines[i].SpecialInstructions = instructions
		}
		return nil
	}

	c.lines = append(c.lines, Line{
		MenuItemID:          item.ID,
		Name:                item.Name,
		UnitPrice:           item.Price,
		Quantity:            quantity,
		SpecialInstructions: instructions,
	})
	return nil
}

// SetQuantity sets the quantity of an existing line; 0 removes it.
// Unknown item ids are ignored.
func (c *Cart) SetQuantity(itemID kernel.UUID, quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	i := c.indexOf(itemID)
	if i < 0 {
		return nil
	}
	if quantity == 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity = quantity
	return nil
}

// RemoveItem is SetQuantity(itemID, 0).
func (c *Cart) RemoveItem(itemID kernel.UUID) {
	_ = c.SetQuantity(itemID, 0)
}

// Subtotal is Σ unit price × quantity.
func (c *Cart) Subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Total())
	}
	return subtotal
}

// Totals prices the cart against r without mutating anything.
func (c *Cart) Totals(r restaurant.Restaurant) Totals {
	return PriceSubtotal(c.Subtotal(), r.DeliveryFee)
}

// MeetsMinimum compares the subtotal, never the total, with the restaurant minimum.
func (c *Cart) MeetsMinimum(r restaurant.Restaurant) bool {
	return c.Subtotal().GreaterThanOrEqual(r.MinimumOrder)
}

// CheckMinimum is MeetsMinimum reported as a validation error.
func (c *Cart) CheckMinimum(r restaurant.Restaurant) error {
	if c.MeetsMinimum(r) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"subtotal",
		fmt.Errorf("%s is below the restaurant minimum order of %s", c.Subtotal(), r.MinimumOrder),
	)
}

// PriceSubtotal applies tax and the flat delivery fee to a subtotal.
// Order headers use it too so that cart and order amounts agree.
func PriceSubtotal(subtotal, deliveryFee kernel.Money) Totals {
	tax := subtotal.ApplyRate(TaxRate)
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: deliveryFee,
		Total:       subtotal.Add(tax).Add(deliveryFee),
	}
}

func (c *Cart) indexOf(itemID kernel.UUID) int {
	for i, line := range c.lines {
		if line.MenuItemID.IsEqual(itemID) {
			return i
		}
	}
	return -1
}
