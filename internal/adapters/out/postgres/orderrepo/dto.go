// Package orderrepo maps order headers and items to the orders and
// order_items tables.
package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of orders. Money columns are NUMERIC(10,2).
type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber           string          `gorm:"uniqueIndex"`
	CustomerID            uuid.UUID       `gorm:"type:uuid;index"`
	RestaurantID          uuid.UUID       `gorm:"type:uuid"`
	Status                string
	PaymentStatus         string
	PaymentMethod         string
	Subtotal              decimal.Decimal `gorm:"type:numeric(10,2)"`
	TaxAmount             decimal.Decimal `gorm:"type:numeric(10,2)"`
	DeliveryFee           decimal.Decimal `gorm:"type:numeric(10,2)"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(10,2)"`
	DeliveryAddress       AddressDTO      `gorm:"type:jsonb;serializer:json"`
	DeliveryInstructions  string
	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery_address JSONB document.
type AddressDTO struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zipCode"`
}

// OrderItemDTO is one row of order_items; Position keeps cart line order.
type OrderItemDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID       `gorm:"type:uuid;index"`
	MenuItemID          uuid.UUID       `gorm:"type:uuid"`
	Quantity            int
	UnitPrice           decimal.Decimal `gorm:"type:numeric(10,2)"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(10,2)"`
	SpecialInstructions string
	Position            int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.State()
	return OrderDTO{
		ID:                    s.ID.Bytes(),
		OrderNumber:           s.Number,
		CustomerID:            s.CustomerID.Bytes(),
		RestaurantID:          s.RestaurantID.Bytes(),
		Status:                s.Status.String(),
		PaymentStatus:         string(s.PaymentStatus),
		PaymentMethod:         s.PaymentMethod,
		Subtotal:              s.Subtotal.Decimal(),
		TaxAmount:             s.TaxAmount.Decimal(),
		DeliveryFee:           s.DeliveryFee.Decimal(),
		TotalAmount:           s.TotalAmount.Decimal(),
		DeliveryAddress:       AddressFromDomain(s.DeliveryAddress),
		DeliveryInstructions:  s.DeliveryInstructions,
		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
		ActualDeliveryTime:    s.ActualDeliveryTime,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	amounts := make([]kernel.Money, 0, 4)
	for _, d := range []decimal.Decimal{dto.Subtotal, dto.TaxAmount, dto.DeliveryFee, dto.TotalAmount} {
		m, moneyErr := kernel.NewMoney(d)
		if moneyErr != nil {
			return nil, moneyErr
		}
		amounts = append(amounts, m)
	}

	address, err := dto.DeliveryAddress.ToDomain()
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:                    id,
		Number:                dto.OrderNumber,
		CustomerID:            customerID,
		RestaurantID:          restaurantID,
		Status:                order.ParseStatus(dto.Status),
		PaymentStatus:         order.PaymentStatus(dto.PaymentStatus),
		PaymentMethod:         dto.PaymentMethod,
		Subtotal:              amounts[0],
		TaxAmount:             amounts[1],
		DeliveryFee:           amounts[2],
		TotalAmount:           amounts[3],
		DeliveryAddress:       address,
		DeliveryInstructions:  dto.DeliveryInstructions,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
	}), nil
}

func itemFromDomain(item *order.Item, position int) OrderItemDTO {
	return OrderItemDTO{
		ID:                  item.ID().Bytes(),
		OrderID:             item.OrderID().Bytes(),
		MenuItemID:          item.MenuItemID().Bytes(),
		Quantity:            item.Quantity(),
		UnitPrice:           item.UnitPrice().Decimal(),
		TotalPrice:          item.TotalPrice().Decimal(),
		SpecialInstructions: item.SpecialInstructions(),
		Position:            position,
	}
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	ids := make([]kernel.UUID, 0, 3)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.MenuItemID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(ids[0], ids[1], ids[2], dto.Quantity, unitPrice, totalPrice, dto.SpecialInstructions), nil
}

func AddressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{Street: a.Street(), City: a.City(), State: a.State(), Zip: a.Zip()}
}

func (a AddressDTO) ToDomain() (kernel.Address, error) {
	return kernel.NewAddress(a.Street, a.City, a.State, a.Zip)
}
