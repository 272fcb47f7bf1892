package commands_test

import (
	"context"
	"log/slog"
	"testing"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/restaurant"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) AddItems(ctx context.Context, orderID kernel.UUID, items []*order.Item) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Items(ctx context.Context, orderID kernel.UUID) ([]*order.Item, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]*order.Item)
	return items, args.Error(1)
}

func (m *MockOrderRepository) HasItems(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(restaurant.Restaurant)
	return r, args.Error(1)
}

func (m *MockRestaurantRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (restaurant.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(restaurant.MenuItem)
	return item, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishOrderPlaced(ctx context.Context, placed *order.Order) error {
	args := m.Called(ctx, placed)
	return args.Error(0)
}

type MockOrderChangePublisher struct{ mock.Mock }

func (m *MockOrderChangePublisher) PublishChange(ctx context.Context, orderID kernel.UUID, change order.Change) error {
	args := m.Called(ctx, orderID, change)
	return args.Error(0)
}

type MockCartStore struct{ mock.Mock }

func (m *MockCartStore) Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartStore) Save(ctx context.Context, customerID kernel.UUID, c *cart.Cart) error {
	args := m.Called(ctx, customerID, c)
	return args.Error(0)
}

func (m *MockCartStore) Delete(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testRestaurant(t *testing.T, minimum string) restaurant.Restaurant {
	t.Helper()
	return restaurant.Restaurant{
		ID:           kernel.NewUUID(),
		Name:         "Pizza Corner",
		DeliveryFee:  money(t, "2.99"),
		MinimumOrder: money(t, minimum),
		IsActive:     true,
	}
}

func testMenuItem(t *testing.T, r restaurant.Restaurant, price string) restaurant.MenuItem {
	t.Helper()
	return restaurant.MenuItem{
		ID:           kernel.NewUUID(),
		RestaurantID: r.ID,
		Name:         "Margherita",
		Price:        money(t, price),
		IsAvailable:  true,
	}
}

// twoPizzaCart is 2 × 10.00 from r.
func twoPizzaCart(t *testing.T, r restaurant.Restaurant) *cart.Cart {
	t.Helper()
	c, err := cart.New(r.ID)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(testMenuItem(t, r, "10.00"), 2, ""))
	return c
}

func testCheckout(t *testing.T) order.Checkout {
	t.Helper()
	address, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701")
	require.NoError(t, err)
	return order.Checkout{Address: address, PaymentMethod: "card"}
}
