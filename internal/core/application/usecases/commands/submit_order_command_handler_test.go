package commands_test

import (
	"errors"
	"testing"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type submitFixture struct {
	repo        *MockOrderRepository
	restaurants *MockRestaurantRepository
	headerUoW   *MockUoW
	itemsUoW    *MockUoW
	factory     *MockUoWFactory
	events      *MockOrderEventPublisher
	handler     commands.SubmitOrderCommandHandler
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		repo:        new(MockOrderRepository),
		restaurants: new(MockRestaurantRepository),
		headerUoW:   new(MockUoW),
		itemsUoW:    new(MockUoW),
		factory:     new(MockUoWFactory),
		events:      new(MockOrderEventPublisher),
	}
	f.handler = commands.NewSubmitOrderCommandHandler(f.factory, f.events, discardLogger())
	return f
}

func (f *submitFixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.restaurants.AssertExpectations(t)
	f.headerUoW.AssertExpectations(t)
	f.itemsUoW.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	r := testRestaurant(t, "15.00")
	cmd, err := commands.NewSubmitOrderCommand(kernel.NewUUID(), twoPizzaCart(t, r), testCheckout(t))
	require.NoError(t, err)

	f := newSubmitFixture()
	var saved *order.Order
	mock.InOrder(
		f.factory.On("Create").Return(f.headerUoW).Once(),
		f.headerUoW.On("Begin", ctx).Return(nil).Once(),
		f.headerUoW.On("RestaurantRepository").Return(f.restaurants).Once(),
		f.restaurants.On("Get", ctx, r.ID).Return(r, nil).Once(),
		f.headerUoW.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		f.headerUoW.On("Commit", ctx).Return(nil).Once(),
		f.headerUoW.On("Rollback", ctx).Return(nil).Once(),
		f.factory.On("Create").Return(f.itemsUoW).Once(),
		f.itemsUoW.On("Begin", ctx).Return(nil).Once(),
		f.itemsUoW.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("AddItems", ctx, mock.AnythingOfType("kernel.UUID"), mock.AnythingOfType("[]*order.Item")).
			Return(nil).Once(),
		f.itemsUoW.On("Commit", ctx).Return(nil).Once(),
		f.itemsUoW.On("Rollback", ctx).Return(nil).Once(),
		f.events.On("PublishOrderPlaced", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.ID(), result.OrderID)
	assert.Equal(t, saved.Number(), result.OrderNumber)
	assert.Equal(t, "24.59", result.Total.String())
	assert.Equal(t, "20.00", saved.Subtotal().String())
	assert.Equal(t, "1.60", saved.TaxAmount().String())
	f.repo.AssertCalled(t, "AddItems", ctx, saved.ID(), mock.Anything)
	f.assertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_BelowMinimumWritesNothing(t *testing.T) {
	ctx := t.Context()
	r := testRestaurant(t, "25.00")
	cmd, _ := commands.NewSubmitOrderCommand(kernel.NewUUID(), twoPizzaCart(t, r), testCheckout(t))

	f := newSubmitFixture()
	mock.InOrder(
		f.factory.On("Create").Return(f.headerUoW).Once(),
		f.headerUoW.On("Begin", ctx).Return(nil).Once(),
		f.headerUoW.On("RestaurantRepository").Return(f.restaurants).Once(),
		f.restaurants.On("Get", ctx, r.ID).Return(r, nil).Once(),
		f.headerUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.NotErrorIs(t, err, commands.ErrPartialWrite)
	f.repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "AddItems", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_InactiveRestaurant(t *testing.T) {
	ctx := t.Context()
	r := testRestaurant(t, "0")
	r.IsActive = false
	cmd, _ := commands.NewSubmitOrderCommand(kernel.NewUUID(), twoPizzaCart(t, r), testCheckout(t))

	f := newSubmitFixture()
	f.factory.On("Create").Return(f.headerUoW).Once()
	f.headerUoW.On("Begin", ctx).Return(nil).Once()
	f.headerUoW.On("RestaurantRepository").Return(f.restaurants).Once()
	f.restaurants.On("Get", ctx, r.ID).Return(r, nil).Once()
	f.headerUoW.On("Rollback", ctx).Return(nil).Once()

	_, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.assertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_DuplicateNumberLeavesNoHeader(t *testing.T) {
	ctx := t.Context()
	r := testRestaurant(t, "0")
	cmd, _ := commands.NewSubmitOrderCommand(kernel.NewUUID(), twoPizzaCart(t, r), testCheckout(t))
	duplicate := errors.New("duplicate key value violates unique constraint")

	f := newSubmitFixture()
	mock.InOrder(
		f.factory.On("Create").Return(f.headerUoW).Once(),
		f.headerUoW.On("Begin", ctx).Return(nil).Once(),
		f.headerUoW.On("RestaurantRepository").Return(f.restaurants).Once(),
		f.restaurants.On("Get", ctx, r.ID).Return(r, nil).Once(),
		f.headerUoW.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(duplicate).Once(),
		f.headerUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, duplicate)
	assert.NotErrorIs(t, err, commands.ErrPartialWrite)
	f.assertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_PartialWrite(t *testing.T) {
	ctx := t.Context()
	r := testRestaurant(t, "15.00")
	sessionCart := twoPizzaCart(t, r)
	cmd, _ := commands.NewSubmitOrderCommand(kernel.NewUUID(), sessionCart, testCheckout(t))
	itemsFailed := errors.New("connection reset")

	f := newSubmitFixture()
	var headerIDs []kernel.UUID
	f.factory.On("Create").Return(f.headerUoW).Once()
	f.headerUoW.On("Begin", ctx).Return(nil)
	f.headerUoW.On("RestaurantRepository").Return(f.restaurants)
	f.restaurants.On("Get", ctx, r.ID).Return(r, nil)
	f.headerUoW.On("OrderRepository").Return(f.repo)
	f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { headerIDs = append(headerIDs, args.Get(1).(*order.Order).ID()) }).
		Return(nil)
	f.headerUoW.On("Commit", ctx).Return(nil)
	f.headerUoW.On("Rollback", ctx).Return(nil)
	f.factory.On("Create").Return(f.itemsUoW).Once()
	f.itemsUoW.On("Begin", ctx).Return(nil)
	f.itemsUoW.On("OrderRepository").Return(f.repo)
	f.repo.On("AddItems", ctx, mock.Anything, mock.Anything).Return(itemsFailed).Once()
	f.itemsUoW.On("Rollback", ctx).Return(nil)

	_, err := f.handler.Handle(ctx, cmd)

	var partial *commands.PartialWriteError
	require.ErrorAs(t, err, &partial)
	require.ErrorIs(t, err, commands.ErrPartialWrite)
	require.ErrorIs(t, err, itemsFailed)
	require.Len(t, headerIDs, 1)
	assert.Equal(t, headerIDs[0], partial.OrderID)
	assert.False(t, errs.IsValidation(err))
	f.events.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
	f.itemsUoW.AssertNotCalled(t, "Commit", mock.Anything)

	t.Run("submitting the same cart again creates a fresh header", func(t *testing.T) {
		f.factory.On("Create").Return(f.headerUoW).Once()
		f.factory.On("Create").Return(f.itemsUoW).Once()
		f.repo.On("AddItems", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		f.itemsUoW.On("Commit", ctx).Return(nil).Once()
		f.events.On("PublishOrderPlaced", ctx, mock.Anything).Return(nil).Once()

		again, _ := commands.NewSubmitOrderCommand(cmd.CustomerID(), sessionCart, testCheckout(t))
		result, err := f.handler.Handle(ctx, again)

		require.NoError(t, err)
		require.Len(t, headerIDs, 2)
		assert.NotEqual(t, headerIDs[0], headerIDs[1])
		assert.Equal(t, headerIDs[1], result.OrderID)
	})
}

func TestSubmitOrderCommandHandler_Handle_PublishFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	r := testRestaurant(t, "0")
	cmd, _ := commands.NewSubmitOrderCommand(kernel.NewUUID(), twoPizzaCart(t, r), testCheckout(t))

	f := newSubmitFixture()
	f.factory.On("Create").Return(f.headerUoW).Once()
	f.factory.On("Create").Return(f.itemsUoW).Once()
	for _, uow := range []*MockUoW{f.headerUoW, f.itemsUoW} {
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(f.repo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
	}
	f.headerUoW.On("RestaurantRepository").Return(f.restaurants).Once()
	f.restaurants.On("Get", ctx, r.ID).Return(r, nil).Once()
	f.repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.repo.On("AddItems", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	f.events.On("PublishOrderPlaced", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	f := newSubmitFixture()

	_, err := f.handler.Handle(t.Context(), commands.SubmitOrderCommand{})

	require.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}
