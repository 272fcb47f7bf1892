package commands_test

import (
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRetryOrderItemsCommandHandler_Handle(t *testing.T) {
	r := testRestaurant(t, "0")
	customerID := kernel.NewUUID()
	sessionCart := twoPizzaCart(t, r)
	placed, err := order.NewOrder(customerID, sessionCart, r, testCheckout(t), time.Now())
	require.NoError(t, err)
	header := order.RestoreOrder(placed.State())

	setup := func() (*MockOrderRepository, *MockUoW, *MockUoWFactory, *MockOrderEventPublisher) {
		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)
		events := new(MockOrderEventPublisher)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		return repo, uow, factory, events
	}

	t.Run("writes items against the existing header", func(t *testing.T) {
		ctx := t.Context()
		repo, uow, factory, events := setup()
		var written []*order.Item
		repo.On("Get", ctx, header.ID()).Return(header, nil).Once()
		repo.On("HasItems", ctx, header.ID()).Return(false, nil).Once()
		repo.On("AddItems", ctx, header.ID(), mock.Anything).
			Run(func(args mock.Arguments) { written = args.Get(2).([]*order.Item) }).
			Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		events.On("PublishOrderPlaced", ctx, header).Return(nil).Once()

		cmd, err := commands.NewRetryOrderItemsCommand(customerID, header.ID(), sessionCart)
		require.NoError(t, err)
		h := commands.NewRetryOrderItemsCommandHandler(factory, events, discardLogger())

		require.NoError(t, h.Handle(ctx, cmd))

		require.Len(t, written, 1)
		assert.True(t, written[0].OrderID().IsEqual(header.ID()))
		assert.True(t, written[0].TotalPrice().Equal(header.Subtotal()))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("refuses when items already exist", func(t *testing.T) {
		ctx := t.Context()
		repo, _, factory, events := setup()
		repo.On("Get", ctx, header.ID()).Return(header, nil).Once()
		repo.On("HasItems", ctx, header.ID()).Return(true, nil).Once()

		cmd, _ := commands.NewRetryOrderItemsCommand(customerID, header.ID(), sessionCart)
		h := commands.NewRetryOrderItemsCommandHandler(factory, events, discardLogger())

		require.ErrorIs(t, h.Handle(ctx, cmd), commands.ErrOrderItemsAlreadySaved)
		repo.AssertNotCalled(t, "AddItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("hides orders of other customers", func(t *testing.T) {
		ctx := t.Context()
		repo, _, factory, events := setup()
		repo.On("Get", ctx, header.ID()).Return(header, nil).Once()

		cmd, _ := commands.NewRetryOrderItemsCommand(kernel.NewUUID(), header.ID(), sessionCart)
		h := commands.NewRetryOrderItemsCommandHandler(factory, events, discardLogger())

		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	})

	t.Run("rejects a cart that no longer prices to the header", func(t *testing.T) {
		ctx := t.Context()
		repo, _, factory, events := setup()
		repo.On("Get", ctx, header.ID()).Return(header, nil).Once()
		repo.On("HasItems", ctx, header.ID()).Return(false, nil).Once()

		changed := twoPizzaCart(t, r)
		require.NoError(t, changed.AddItem(testMenuItem(t, r, "3.00"), 1, ""))
		cmd, _ := commands.NewRetryOrderItemsCommand(customerID, header.ID(), changed)
		h := commands.NewRetryOrderItemsCommandHandler(factory, events, discardLogger())

		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrValueIsInvalid)
		repo.AssertNotCalled(t, "AddItems", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNewRetryOrderItemsCommand_Invalid(t *testing.T) {
	_, err := commands.NewRetryOrderItemsCommand(kernel.UUID{}, kernel.UUID{}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer id")
	assert.Contains(t, err.Error(), "order id")
	assert.ErrorIs(t, err, order.ErrEmptyCart)
}
