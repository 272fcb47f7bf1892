package commands

import (
	"context"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// ApplyOrderChangeCommandHandler persists a fulfillment update and then
// pushes the same partial change to live subscribers of the order.
type ApplyOrderChangeCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderChangePublisher
}

func NewApplyOrderChangeCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderChangePublisher,
) ApplyOrderChangeCommandHandler {
	return ApplyOrderChangeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle stamps updated_at when the change lacks it, so subscribers see the
// same value that was stored.
func (h *ApplyOrderChangeCommandHandler) Handle(ctx context.Context, cmd ApplyOrderChangeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	change := cmd.Change()
	if !change.UpdatedAt.IsSet() {
		change.UpdatedAt = order.Some(time.Now().UTC())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	aggregate, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	aggregate.Apply(change)

	if err = orders.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishChange(ctx, aggregate.ID(), change); err != nil {
		return fmt.Errorf("publish order change: %w", err)
	}

	return nil
}
