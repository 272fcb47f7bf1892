package kafkaconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

const OrderChangedTopic = "order.changed"

// OrderChangedMessage is published by the fulfillment side. Changes holds
// only the columns that changed.
type OrderChangedMessage struct {
	OrderID string                     `json:"order_id"`
	Changes map[string]json.RawMessage `json:"changes"`
}

type OrderChangeApplier interface {
	Handle(ctx context.Context, cmd commands.ApplyOrderChangeCommand) error
}

type OrderChangedHandler struct {
	applier OrderChangeApplier
	logger  *slog.Logger
}

func NewOrderChangedHandler(applier OrderChangeApplier, logger *slog.Logger) *OrderChangedHandler {
	return &OrderChangedHandler{
		applier: applier,
		logger:  logger.With("component", "order_changed_handler"),
	}
}

// Handle rejects malformed messages, immutable columns and unknown orders as
// permanent failures. Store errors are returned for retry.
func (h *OrderChangedHandler) Handle(ctx context.Context, payload []byte) error {
	var msg OrderChangedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Permanent(fmt.Errorf("unmarshal order changed message: %w", err))
	}

	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		return Permanent(fmt.Errorf("order id %q: %w", msg.OrderID, err))
	}

	change, err := order.ParseChange(msg.Changes)
	if err != nil {
		return Permanent(err)
	}
	if change.IsEmpty() {
		h.logger.Debug("order change without known columns ignored", "order_id", msg.OrderID)
		return nil
	}

	cmd, err := commands.NewApplyOrderChangeCommand(orderID, change)
	if err != nil {
		return Permanent(err)
	}

	if err = h.applier.Handle(ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) || errs.IsValidation(err) {
			return Permanent(err)
		}
		return err
	}

	h.logger.Info("order change applied",
		"order_id", msg.OrderID,
		"columns", len(msg.Changes))
	return nil
}
