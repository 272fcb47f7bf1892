package commands

import (
	"context"
	"errors"
	"log/slog"

	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// ErrOrderItemsAlreadySaved is returned when retrying an order that is complete.
var ErrOrderItemsAlreadySaved = errors.New("order items are already saved")

type RetryOrderItemsCommandHandler struct {
	uowFactory UoWFactory
	events     ports.OrderEventPublisher
	logger     *slog.Logger
}

func NewRetryOrderItemsCommandHandler(
	uowFactory UoWFactory,
	events ports.OrderEventPublisher,
	logger *slog.Logger,
) RetryOrderItemsCommandHandler {
	return RetryOrderItemsCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger.With("component", "retry_order_items"),
	}
}

// Handle re-inserts the items against the existing header. The header must
// belong to the customer and must still have no items.
func (h *RetryOrderItemsCommandHandler) Handle(ctx context.Context, cmd RetryOrderItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	header, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !header.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	hasItems, err := orders.HasItems(ctx, header.ID())
	if err != nil {
		return err
	}
	if hasItems {
		return ErrOrderItemsAlreadySaved
	}

	items, err := header.RebuildItems(cmd.Cart())
	if err != nil {
		return err
	}

	if err = orders.AddItems(ctx, header.ID(), items); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order items saved on retry", "order_id", header.ID().String())

	if err = h.events.PublishOrderPlaced(ctx, header); err != nil {
		h.logger.WarnContext(ctx, "order placed event not published",
			"order_id", header.ID().String(),
			"error", err,
		)
	}

	return nil
}
