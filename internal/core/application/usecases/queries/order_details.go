// Package queries contains read-only operations. Handlers read through GORM
// with hand-written SQL and return read models shaped for the API.
package queries

import (
	"slices"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderDetails is the full tracking snapshot: header, restaurant and items.
// Values are treated as immutable; Apply returns a new one.
type OrderDetails struct {
	ID                    kernel.UUID         `json:"id"`
	OrderNumber           string              `json:"order_number"`
	CustomerID            kernel.UUID         `json:"customer_id"`
	Status                order.Status        `json:"status"`
	PaymentStatus         order.PaymentStatus `json:"payment_status"`
	PaymentMethod         string              `json:"payment_method"`
	Subtotal              kernel.Money        `json:"subtotal"`
	TaxAmount             kernel.Money        `json:"tax_amount"`
	DeliveryFee           kernel.Money        `json:"delivery_fee"`
	TotalAmount           kernel.Money        `json:"total_amount"`
	DeliveryAddress       AddressView         `json:"delivery_address"`
	DeliveryInstructions  string              `json:"delivery_instructions"`
	EstimatedDeliveryTime time.Time           `json:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time          `json:"actual_delivery_time"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	Restaurant            RestaurantSummary   `json:"restaurant"`
	Items                 []OrderItemDetails  `json:"items"`
}

type AddressView struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zipCode"`
}

type RestaurantSummary struct {
	ID      kernel.UUID `json:"id"`
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
}

type OrderItemDetails struct {
	ID                  kernel.UUID  `json:"id"`
	MenuItemID          kernel.UUID  `json:"menu_item_id"`
	Name                string       `json:"name"`
	Quantity            int          `json:"quantity"`
	UnitPrice           kernel.Money `json:"unit_price"`
	TotalPrice          kernel.Money `json:"total_price"`
	SpecialInstructions string       `json:"special_instructions"`
}

// Apply overwrites exactly the fields present in ch and keeps every other
// field of d. The receiver is not modified.
func (d OrderDetails) Apply(ch order.Change) OrderDetails {
	next := d
	next.Items = slices.Clone(d.Items)
	if d.ActualDeliveryTime != nil {
		t := *d.ActualDeliveryTime
		next.ActualDeliveryTime = &t
	}

	if v, ok := ch.Status.Get(); ok {
		next.Status = v
	}
	if v, ok := ch.PaymentStatus.Get(); ok {
		next.PaymentStatus = v
	}
	if v, ok := ch.EstimatedDeliveryTime.Get(); ok {
		next.EstimatedDeliveryTime = v
	}
	if v, ok := ch.ActualDeliveryTime.Get(); ok {
		next.ActualDeliveryTime = nil
		if v != nil {
			t := *v
			next.ActualDeliveryTime = &t
		}
	}
	if v, ok := ch.DeliveryInstructions.Get(); ok {
		next.DeliveryInstructions = v
	}
	if v, ok := ch.UpdatedAt.Get(); ok {
		next.UpdatedAt = v
	}
	return next
}

// StatusView is the display metadata of a status.
type StatusView struct {
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Message  string   `json:"message"`
	Progress *float64 `json:"progress"`
	Terminal bool     `json:"terminal"`
}

// NewStatusView leaves Progress nil for statuses off the forward track.
func NewStatusView(s order.Status) StatusView {
	view := StatusView{
		Value:    s.String(),
		Label:    s.Label(),
		Icon:     s.Icon(),
		Message:  s.Message(),
		Terminal: s.IsTerminal(),
	}
	if p, ok := s.Progress(); ok {
		view.Progress = &p
	}
	return view
}
