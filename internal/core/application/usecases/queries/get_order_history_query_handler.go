package queries

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderSummary is one row of the customer's order history.
type OrderSummary struct {
	ID             kernel.UUID  `json:"id"`
	OrderNumber    string       `json:"order_number"`
	Status         order.Status `json:"status"`
	TotalAmount    kernel.Money `json:"total_amount"`
	RestaurantName string       `json:"restaurant_name"`
	ItemCount      int          `json:"item_count"`
	CreatedAt      time.Time    `json:"created_at"`
}

type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

type orderSummaryRow struct {
	ID             uuid.UUID
	OrderNumber    string
	Status         string
	TotalAmount    decimal.Decimal
	RestaurantName string
	ItemCount      int
	CreatedAt      time.Time
}

// Handle lists the customer's orders newest first. Headers whose items were
// never written are left out.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderSummaryRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.total_amount,
			r.name AS restaurant_name,
			COUNT(i.id) AS item_count,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		JOIN order_items i ON i.order_id = o.id
		WHERE o.customer_id = ?
		GROUP BY o.id, r.name
		ORDER BY o.created_at DESC, o.order_number DESC
	`, query.CustomerID().Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		total, moneyErr := kernel.NewMoney(row.TotalAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		summaries = append(summaries, OrderSummary{
			ID:             id,
			OrderNumber:    row.OrderNumber,
			Status:         order.ParseStatus(row.Status),
			TotalAmount:    total,
			RestaurantName: row.RestaurantName,
			ItemCount:      row.ItemCount,
			CreatedAt:      row.CreatedAt,
		})
	}

	return summaries, nil
}
