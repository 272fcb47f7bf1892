package order

import "foodorder/internal/core/domain/model/kernel"

// Item is one persisted order line. Its prices are a snapshot taken at
// placement and never change afterwards.
type Item struct {
	id                  kernel.UUID
	orderID             kernel.UUID
	menuItemID          kernel.UUID
	quantity            int
	unitPrice           kernel.Money
	totalPrice          kernel.Money
	specialInstructions string
}

func RestoreItem(id, orderID, menuItemID kernel.UUID, quantity int, unitPrice, totalPrice kernel.Money, specialInstructions string) *Item {
	return &Item{
		id:                  id,
		orderID:             orderID,
		menuItemID:          menuItemID,
		quantity:            quantity,
		unitPrice:           unitPrice,
		totalPrice:          totalPrice,
		specialInstructions: specialInstructions,
	}
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i *Item) TotalPrice() kernel.Money {
	return i.totalPrice
}

func (i *Item) SpecialInstructions() string {
	return i.specialInstructions
}
