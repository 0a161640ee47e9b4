package command

import (
	"context"
	"fmt"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/logger"
)

// DeleteOrderCommand represents the command to delete (cancel) an order
type DeleteOrderCommand struct {
	OrderID string
}

// DeleteOrderHandler handles delete order command
type DeleteOrderHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteOrderHandler creates a new delete order handler
func NewDeleteOrderHandler(uow domain.UnitOfWork) *DeleteOrderHandler {
	return &DeleteOrderHandler{uow: uow}
}

// Handle removes the order record. Stock deducted when it was placed is not restored.
func (h *DeleteOrderHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	var status domain.OrderStatus
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		order, err := tx.Orders().FindByID(cmd.OrderID)
		if err != nil {
			return err
		}
		status = order.Status
		return tx.Orders().Delete(order.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	logger.Info(ctx).
		Str("order_id", cmd.OrderID).
		Str("previous_status", string(status)).
		Msg("Order deleted")
	return nil
}
