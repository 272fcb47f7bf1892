package order

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/restaurant"
	"foodorder/internal/pkg/errs"
)

// EstimatedDeliveryWindow is added to the placement time to seed the ETA.
const EstimatedDeliveryWindow = 45 * time.Minute

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrEmptyCart             = errs.NewValueIsRequiredError("cart items")
)

// PaymentStatus is owned by the payment processor; only pending is set here.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Checkout holds the customer-entered part of a placement.
type Checkout struct {
	Address              kernel.Address
	DeliveryInstructions string
	PaymentMethod        string
}

// Order is the persisted header of a checkout. Money fields are fixed at
// creation; afterwards only the fulfillment side changes status, payment
// status and delivery times through Apply.
type Order struct {
	id                    kernel.UUID
	number                string
	customerID            kernel.UUID
	restaurantID          kernel.UUID
	status                Status
	paymentStatus         PaymentStatus
	paymentMethod         string
	subtotal              kernel.Money
	taxAmount             kernel.Money
	deliveryFee           kernel.Money
	totalAmount           kernel.Money
	deliveryAddress       kernel.Address
	deliveryInstructions  string
	estimatedDeliveryTime time.Time
	actualDeliveryTime    *time.Time
	createdAt             time.Time
	updatedAt             time.Time

	items []*Item

	isConstructed bool
}

// NewOrder prices c against r and builds the header plus one item per cart
// line. Amounts come from the cart lines only, so Σ item totals equals the
// subtotal and total = subtotal + tax + delivery fee.
func NewOrder(customerID kernel.UUID, c *cart.Cart, r restaurant.Restaurant, checkout Checkout, now time.Time) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	var problems []error
	if err := customerID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("customer id", err))
	}
	if !c.RestaurantID().IsEqual(r.ID) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("restaurant", cart.ErrRestaurantMismatch))
	}
	if err := c.CheckMinimum(r); err != nil {
		problems = append(problems, err)
	}
	if err := checkout.Address.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(checkout.PaymentMethod) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("payment method"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	number, err := NewNumber(now)
	if err != nil {
		return nil, err
	}

	id := kernel.NewUUID()
	totals := c.Totals(r)
	o := &Order{
		id:                    id,
		number:                number,
		customerID:            customerID,
		restaurantID:          r.ID,
		status:                Pending,
		paymentStatus:         PaymentPending,
		paymentMethod:         strings.TrimSpace(checkout.PaymentMethod),
		subtotal:              totals.Subtotal,
		taxAmount:             totals.Tax,
		deliveryFee:           totals.DeliveryFee,
		totalAmount:           totals.Total,
		deliveryAddress:       checkout.Address,
		deliveryInstructions:  strings.TrimSpace(checkout.DeliveryInstructions),
		estimatedDeliveryTime: now.Add(EstimatedDeliveryWindow),
		createdAt:             now,
		updatedAt:             now,
		isConstructed:         true,
	}

	o.items = o.itemsFrom(c)

	return o, nil
}

// RebuildItems recreates the items of a header whose item write failed,
// from the same cart. The cart must still price to the stored subtotal.
func (o *Order) RebuildItems(c *cart.Cart) ([]*Item, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !c.RestaurantID().IsEqual(o.restaurantID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("cart", cart.ErrRestaurantMismatch)
	}
	if !c.Subtotal().Equal(o.subtotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"cart",
			fmt.Errorf("cart subtotal %s does not match order subtotal %s", c.Subtotal(), o.subtotal),
		)
	}
	return o.itemsFrom(c), nil
}

func (o *Order) itemsFrom(c *cart.Cart) []*Item {
	lines := c.Lines()
	items := make([]*Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, &Item{
			id:                  kernel.NewUUID(),
			orderID:             o.id,
			menuItemID:          line.MenuItemID,
			quantity:            line.Quantity,
			unitPrice:           line.UnitPrice,
			totalPrice:          line.Total(),
			specialInstructions: line.SpecialInstructions,
		})
	}
	return items
}

// NewNumber returns a human-readable order number: ORD-<unix millis>-<6 hex>.
// The random suffix keeps numbers from colliding within the same
// millisecond; the store's unique index is the final arbiter.
func NewNumber(now time.Time) (string, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), strings.ToUpper(hex.EncodeToString(suffix))), nil
}

// State is the full persisted shape of an order header.
type State struct {
	ID                    kernel.UUID
	Number                string
	CustomerID            kernel.UUID
	RestaurantID          kernel.UUID
	Status                Status
	PaymentStatus         PaymentStatus
	PaymentMethod         string
	Subtotal              kernel.Money
	TaxAmount             kernel.Money
	DeliveryFee           kernel.Money
	TotalAmount           kernel.Money
	DeliveryAddress       kernel.Address
	DeliveryInstructions  string
	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RestoreOrder rebuilds an order loaded from storage. Items are loaded
// separately and are not attached.
func RestoreOrder(s State) *Order {
	return &Order{
		id:                    s.ID,
		number:                s.Number,
		customerID:            s.CustomerID,
		restaurantID:          s.RestaurantID,
		status:                s.Status,
		paymentStatus:         s.PaymentStatus,
		paymentMethod:         s.PaymentMethod,
		subtotal:              s.Subtotal,
		taxAmount:             s.TaxAmount,
		deliveryFee:           s.DeliveryFee,
		totalAmount:           s.TotalAmount,
		deliveryAddress:       s.DeliveryAddress,
		deliveryInstructions:  s.DeliveryInstructions,
		estimatedDeliveryTime: s.EstimatedDeliveryTime,
		actualDeliveryTime:    s.ActualDeliveryTime,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		isConstructed:         true,
	}
}

// State returns a copy of the header fields for persistence.
func (o *Order) State() State {
	return State{
		ID:                    o.id,
		Number:                o.number,
		CustomerID:            o.customerID,
		RestaurantID:          o.restaurantID,
		Status:                o.status,
		PaymentStatus:         o.paymentStatus,
		PaymentMethod:         o.paymentMethod,
		Subtotal:              o.subtotal,
		TaxAmount:             o.taxAmount,
		DeliveryFee:           o.deliveryFee,
		TotalAmount:           o.totalAmount,
		DeliveryAddress:       o.deliveryAddress,
		DeliveryInstructions:  o.deliveryInstructions,
		EstimatedDeliveryTime: o.estimatedDeliveryTime,
		ActualDeliveryTime:    o.actualDeliveryTime,
		CreatedAt:             o.createdAt,
		UpdatedAt:             o.updatedAt,
	}
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

func (o *Order) TaxAmount() kernel.Money {
	return o.taxAmount
}

func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns the items built by NewOrder; restored orders have none.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// Apply writes the fields present in ch. It refuses nothing by itself:
// money columns cannot be expressed in a Change.
func (o *Order) Apply(ch Change) {
	if v, ok := ch.Status.Get(); ok {
		o.status = v
	}
	if v, ok := ch.PaymentStatus.Get(); ok {
		o.paymentStatus = v
	}
	if v, ok := ch.EstimatedDeliveryTime.Get(); ok {
		o.estimatedDeliveryTime = v
	}
	if v, ok := ch.ActualDeliveryTime.Get(); ok {
		o.actualDeliveryTime = v
	}
	if v, ok := ch.DeliveryInstructions.Get(); ok {
		o.deliveryInstructions = v
	}
	if v, ok := ch.UpdatedAt.Get(); ok {
		o.updatedAt = v
	}
}
