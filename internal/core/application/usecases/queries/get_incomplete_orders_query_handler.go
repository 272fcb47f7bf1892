package queries

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncompleteOrder struct {
	ID           kernel.UUID
	OrderNumber  string
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	CreatedAt    time.Time
}

type GetIncompleteOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetIncompleteOrdersQueryHandler(db *gorm.DB) GetIncompleteOrdersQueryHandler {
	return GetIncompleteOrdersQueryHandler{db: db}
}

type incompleteOrderRow struct {
	ID           uuid.UUID
	OrderNumber  string
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
	CreatedAt    time.Time
}

func (h GetIncompleteOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetIncompleteOrdersQuery,
) ([]IncompleteOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []incompleteOrderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT o.id, o.order_number, o.customer_id, o.restaurant_id, o.created_at
		FROM orders o
		WHERE o.created_at < ?
			AND NOT EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id)
		ORDER BY o.created_at
	`, query.OlderThan()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]IncompleteOrder, 0, len(rows))
	for _, row := range rows {
		ids, idErr := uuidsFrom(row.ID, row.CustomerID, row.RestaurantID)
		if idErr != nil {
			return nil, idErr
		}
		result = append(result, IncompleteOrder{
			ID:           ids[0],
			OrderNumber:  row.OrderNumber,
			CustomerID:   ids[1],
			RestaurantID: ids[2],
			CreatedAt:    row.CreatedAt,
		})
	}
	return result, nil
}
