package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// SubmitOrderResult identifies the created order.
type SubmitOrderResult struct {
	OrderID     kernel.UUID
	OrderNumber string
	Total       kernel.Money
}

// SubmitOrderCommandHandler writes the order header and its items in two
// units of work. A failure between them surfaces as *PartialWriteError and
// never leads to a second header.
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	events     ports.OrderEventPublisher
	logger     *slog.Logger
}

func NewSubmitOrderCommandHandler(
	uowFactory UoWFactory,
	events ports.OrderEventPublisher,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger.With("component", "submit_order"),
	}
}

// Handle validates against the stored restaurant, writes the header, then
// the items. Validation failures perform no writes.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	placed, err := h.writeHeader(ctx, cmd)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = h.writeItems(ctx, placed); err != nil {
		h.logger.ErrorContext(ctx, "order items were not saved",
			"order_id", placed.ID().String(),
			"order_number", placed.Number(),
			"error", err,
		)
		return SubmitOrderResult{}, &PartialWriteError{
			OrderID:     placed.ID(),
			OrderNumber: placed.Number(),
			Cause:       err,
		}
	}

	if err = h.events.PublishOrderPlaced(ctx, placed); err != nil {
		h.logger.WarnContext(ctx, "order placed event not published",
			"order_id", placed.ID().String(),
			"error", err,
		)
	}

	return SubmitOrderResult{
		OrderID:     placed.ID(),
		OrderNumber: placed.Number(),
		Total:       placed.TotalAmount(),
	}, nil
}

func (h *SubmitOrderCommandHandler) writeHeader(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RestaurantRepository().Get(ctx, cmd.Cart().RestaurantID())
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"restaurant",
			fmt.Errorf("%s is not accepting orders", r.Name),
		)
	}

	placed, err := order.NewOrder(cmd.CustomerID(), cmd.Cart(), r, cmd.Checkout(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, fmt.Errorf("save order header: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order header: %w", err)
	}

	return placed, nil
}

func (h *SubmitOrderCommandHandler) writeItems(ctx context.Context, placed *order.Order) error {
	return addItems(ctx, h.uowFactory.Create(), placed.ID(), placed.Items())
}

func addItems(ctx context.Context, uow UoW, orderID kernel.UUID, items []*order.Item) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().AddItems(ctx, orderID, items); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
