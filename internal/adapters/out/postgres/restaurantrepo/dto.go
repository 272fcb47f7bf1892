// Package restaurantrepo reads restaurants and menu items. Both tables are
// owned by the catalogue side; this service only writes them in tests and
// local seeding.
package restaurantrepo

import (
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Phone        string
	Address      string
	DeliveryFee  decimal.Decimal `gorm:"type:numeric(10,2)"`
	MinimumOrder decimal.Decimal `gorm:"type:numeric(10,2)"`
	IsActive     bool
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Price        decimal.Decimal `gorm:"type:numeric(10,2)"`
	IsAvailable  bool
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func restaurantFromDomain(r restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:           r.ID.Bytes(),
		Name:         r.Name,
		Phone:        r.Phone,
		Address:      r.Address,
		DeliveryFee:  r.DeliveryFee.Decimal(),
		MinimumOrder: r.MinimumOrder.Decimal(),
		IsActive:     r.IsActive,
	}
}

func restaurantToDomain(dto RestaurantDTO) (restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	minimum, err := kernel.NewMoney(dto.MinimumOrder)
	if err != nil {
		return restaurant.Restaurant{}, err
	}

	return restaurant.Restaurant{
		ID:           id,
		Name:         dto.Name,
		Phone:        dto.Phone,
		Address:      dto.Address,
		DeliveryFee:  fee,
		MinimumOrder: minimum,
		IsActive:     dto.IsActive,
	}, nil
}

func menuItemFromDomain(item restaurant.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:           item.ID.Bytes(),
		RestaurantID: item.RestaurantID.Bytes(),
		Name:         item.Name,
		Price:        item.Price.Decimal(),
		IsAvailable:  item.IsAvailable,
	}
}

func menuItemToDomain(dto MenuItemDTO) (restaurant.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return restaurant.MenuItem{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return restaurant.MenuItem{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return restaurant.MenuItem{}, err
	}

	return restaurant.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         dto.Name,
		Price:        price,
		IsAvailable:  dto.IsAvailable,
	}, nil
}
