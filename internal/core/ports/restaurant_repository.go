package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/restaurant"
)

// RestaurantRepository reads merchant data maintained elsewhere.
type RestaurantRepository interface {
	Get(ctx context.Context, id kernel.UUID) (restaurant.Restaurant, error)
	GetMenuItem(ctx context.Context, id kernel.UUID) (restaurant.MenuItem, error)
}
