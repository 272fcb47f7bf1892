// Package restaurant models the read-only merchant data the order pipeline
// depends on: delivery fee, minimum order and the menu items a cart may hold.
// Restaurants and menus are maintained outside this service.
package restaurant

import (
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Restaurant carries the pricing policy applied at checkout.
type Restaurant struct {
	ID           kernel.UUID
	Name         string
	Phone        string
	Address      string
	DeliveryFee  kernel.Money
	MinimumOrder kernel.Money
	IsActive     bool
}

// Validate checks the fields the pipeline relies on.
func (r Restaurant) Validate() error {
	var problems []error
	if err := r.ID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("restaurant name"))
	}
	return errors.Join(problems...)
}

// MenuItem is the authoritative price source for cart lines.
type MenuItem struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        kernel.Money
	IsAvailable  bool
}
