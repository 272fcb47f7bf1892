package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler reads an order with its restaurant and items.
// Orders without items are reported as not found: their submission has not
// finished.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

type orderDetailsRow struct {
	ID                    uuid.UUID
	OrderNumber           string
	CustomerID            uuid.UUID
	Status                string
	PaymentStatus         string
	PaymentMethod         string
	Subtotal              decimal.Decimal
	TaxAmount             decimal.Decimal
	DeliveryFee           decimal.Decimal
	TotalAmount           decimal.Decimal
	DeliveryAddress       []byte
	DeliveryInstructions  string
	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	RestaurantID          uuid.UUID
	RestaurantName        string
	RestaurantPhone       string
	RestaurantAddress     string
}

type orderItemRow struct {
	ID                  uuid.UUID
	MenuItemID          uuid.UUID
	Name                string
	Quantity            int
	UnitPrice           decimal.Decimal
	TotalPrice          decimal.Decimal
	SpecialInstructions string
}

func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	var rows []orderDetailsRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.customer_id,
			o.status,
			o.payment_status,
			o.payment_method,
			o.subtotal,
			o.tax_amount,
			o.delivery_fee,
			o.total_amount,
			o.delivery_address,
			o.delivery_instructions,
			o.estimated_delivery_time,
			o.actual_delivery_time,
			o.created_at,
			o.updated_at,
			r.id AS restaurant_id,
			r.name AS restaurant_name,
			r.phone AS restaurant_phone,
			r.address AS restaurant_address
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = ?
			AND o.customer_id = ?
			AND EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id)
	`, query.OrderID().Bytes(), query.CustomerID().Bytes()).Scan(&rows).Error
	if err != nil {
		return OrderDetails{}, err
	}
	if len(rows) == 0 {
		return OrderDetails{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	details, err := rows[0].toView()
	if err != nil {
		return OrderDetails{}, err
	}

	var items []orderItemRow
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.menu_item_id,
			COALESCE(m.name, '') AS name,
			i.quantity,
			i.unit_price,
			i.total_price,
			i.special_instructions
		FROM order_items i
		LEFT JOIN menu_items m ON m.id = i.menu_item_id
		WHERE i.order_id = ?
		ORDER BY i.position
	`, query.OrderID().Bytes()).Scan(&items).Error
	if err != nil {
		return OrderDetails{}, err
	}

	details.Items = make([]OrderItemDetails, 0, len(items))
	for _, item := range items {
		view, itemErr := item.toView()
		if itemErr != nil {
			return OrderDetails{}, itemErr
		}
		details.Items = append(details.Items, view)
	}

	return details, nil
}

func (row orderDetailsRow) toView() (OrderDetails, error) {
	ids, err := uuidsFrom(row.ID, row.CustomerID, row.RestaurantID)
	if err != nil {
		return OrderDetails{}, err
	}
	amounts, err := moneyFrom(row.Subtotal, row.TaxAmount, row.DeliveryFee, row.TotalAmount)
	if err != nil {
		return OrderDetails{}, err
	}

	var address AddressView
	if err = json.Unmarshal(row.DeliveryAddress, &address); err != nil {
		return OrderDetails{}, fmt.Errorf("decode delivery address: %w", err)
	}

	return OrderDetails{
		ID:                    ids[0],
		OrderNumber:           row.OrderNumber,
		CustomerID:            ids[1],
		Status:                order.ParseStatus(row.Status),
		PaymentStatus:         order.PaymentStatus(row.PaymentStatus),
		PaymentMethod:         row.PaymentMethod,
		Subtotal:              amounts[0],
		TaxAmount:             amounts[1],
		DeliveryFee:           amounts[2],
		TotalAmount:           amounts[3],
		DeliveryAddress:       address,
		DeliveryInstructions:  row.DeliveryInstructions,
		EstimatedDeliveryTime: row.EstimatedDeliveryTime,
		ActualDeliveryTime:    row.ActualDeliveryTime,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
		Restaurant: RestaurantSummary{
			ID:      ids[2],
			Name:    row.RestaurantName,
			Phone:   row.RestaurantPhone,
			Address: row.RestaurantAddress,
		},
	}, nil
}

func (row orderItemRow) toView() (OrderItemDetails, error) {
	ids, err := uuidsFrom(row.ID, row.MenuItemID)
	if err != nil {
		return OrderItemDetails{}, err
	}
	amounts, err := moneyFrom(row.UnitPrice, row.TotalPrice)
	if err != nil {
		return OrderItemDetails{}, err
	}
	return OrderItemDetails{
		ID:                  ids[0],
		MenuItemID:          ids[1],
		Name:                row.Name,
		Quantity:            row.Quantity,
		UnitPrice:           amounts[0],
		TotalPrice:          amounts[1],
		SpecialInstructions: row.SpecialInstructions,
	}, nil
}

func uuidsFrom(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		parsed, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func moneyFrom(raw ...decimal.Decimal) ([]kernel.Money, error) {
	out := make([]kernel.Money, 0, len(raw))
	for _, d := range raw {
		m, err := kernel.NewMoney(d)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
