package commands_test

import (
	"testing"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemCommandHandler_Handle(t *testing.T) {
	r := testRestaurant(t, "0")
	customerID := kernel.NewUUID()

	t.Run("starts a cart for the item's restaurant", func(t *testing.T) {
		ctx := t.Context()
		item := testMenuItem(t, r, "8.50")
		restaurants := new(MockRestaurantRepository)
		carts := new(MockCartStore)
		var saved *cart.Cart
		restaurants.On("GetMenuItem", ctx, item.ID).Return(item, nil).Once()
		carts.On("Get", ctx, customerID).Return(nil, errs.NewObjectNotFoundError("cart", customerID.String())).Once()
		carts.On("Save", ctx, customerID, mock.AnythingOfType("*cart.Cart")).
			Run(func(args mock.Arguments) { saved = args.Get(2).(*cart.Cart) }).
			Return(nil).Once()

		cmd, err := commands.NewAddCartItemCommand(customerID, item.ID, 2, "extra cheese")
		require.NoError(t, err)
		h := commands.NewAddCartItemCommandHandler(restaurants, carts)

		require.NoError(t, h.Handle(ctx, cmd))

		require.NotNil(t, saved)
		assert.True(t, saved.RestaurantID().IsEqual(r.ID))
		lines := saved.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, "8.50", lines[0].UnitPrice.String())
		carts.AssertExpectations(t)
	})

	t.Run("refuses items from a second restaurant", func(t *testing.T) {
		ctx := t.Context()
		other := testRestaurant(t, "0")
		item := testMenuItem(t, other, "4.00")
		restaurants := new(MockRestaurantRepository)
		carts := new(MockCartStore)
		restaurants.On("GetMenuItem", ctx, item.ID).Return(item, nil).Once()
		carts.On("Get", ctx, customerID).Return(twoPizzaCart(t, r), nil).Once()

		cmd, _ := commands.NewAddCartItemCommand(customerID, item.ID, 1, "")
		h := commands.NewAddCartItemCommandHandler(restaurants, carts)

		err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), cart.ErrRestaurantMismatch.Error())
		carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a zero quantity at construction", func(t *testing.T) {
		_, err := commands.NewAddCartItemCommand(customerID, kernel.NewUUID(), 0, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestSetCartItemQuantityCommandHandler_Handle(t *testing.T) {
	r := testRestaurant(t, "0")
	customerID := kernel.NewUUID()

	t.Run("removing the last line deletes the cart", func(t *testing.T) {
		ctx := t.Context()
		sessionCart := twoPizzaCart(t, r)
		itemID := sessionCart.Lines()[0].MenuItemID
		carts := new(MockCartStore)
		carts.On("Get", ctx, customerID).Return(sessionCart, nil).Once()
		carts.On("Delete", ctx, customerID).Return(nil).Once()

		cmd, err := commands.NewSetCartItemQuantityCommand(customerID, itemID, 0)
		require.NoError(t, err)
		h := commands.NewSetCartItemQuantityCommandHandler(carts)

		require.NoError(t, h.Handle(ctx, cmd))
		carts.AssertExpectations(t)
	})

	t.Run("updates the quantity", func(t *testing.T) {
		ctx := t.Context()
		sessionCart := twoPizzaCart(t, r)
		itemID := sessionCart.Lines()[0].MenuItemID
		carts := new(MockCartStore)
		carts.On("Get", ctx, customerID).Return(sessionCart, nil).Once()
		carts.On("Save", ctx, customerID, sessionCart).Return(nil).Once()

		cmd, _ := commands.NewSetCartItemQuantityCommand(customerID, itemID, 5)
		h := commands.NewSetCartItemQuantityCommandHandler(carts)

		require.NoError(t, h.Handle(ctx, cmd))
		assert.Equal(t, 5, sessionCart.Lines()[0].Quantity)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := commands.NewSetCartItemQuantityCommand(customerID, kernel.NewUUID(), -2)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestClearCartCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	carts := new(MockCartStore)
	carts.On("Delete", ctx, customerID).Return(nil).Once()

	cmd, err := commands.NewClearCartCommand(customerID)
	require.NoError(t, err)
	h := commands.NewClearCartCommandHandler(carts)

	require.NoError(t, h.Handle(ctx, cmd))
	carts.AssertExpectations(t)

	_, err = commands.NewClearCartCommand(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
