package restaurantrepo

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/restaurant"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRestaurantRepository implements ports.RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return restaurant.Restaurant{}, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return restaurant.Restaurant{}, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return restaurant.Restaurant{}, err
	}

	return restaurantToDomain(dto)
}

func (r *GormRestaurantRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (restaurant.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return restaurant.MenuItem{}, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return restaurant.MenuItem{}, errs.NewObjectNotFoundError("menu item", id.String())
		}
		return restaurant.MenuItem{}, err
	}

	return menuItemToDomain(dto)
}

// Add inserts a restaurant; used for seeding.
func (r *GormRestaurantRepository) Add(ctx context.Context, rest restaurant.Restaurant) error {
	if err := rest.Validate(); err != nil {
		return err
	}
	dto := restaurantFromDomain(rest)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddMenuItem inserts a menu item; used for seeding.
func (r *GormRestaurantRepository) AddMenuItem(ctx context.Context, item restaurant.MenuItem) error {
	dto := menuItemFromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}
