package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/logger"
)

// MarkShippedCommand represents the command to mark an order as shipped
type MarkShippedCommand struct {
	OrderID        string
	TrackingNumber string
	ShippingDate   string
}

// MarkShippedHandler handles mark shipped command
type MarkShippedHandler struct {
	uow domain.UnitOfWork
}

// NewMarkShippedHandler creates a new mark shipped handler
func NewMarkShippedHandler(uow domain.UnitOfWork) *MarkShippedHandler {
	return &MarkShippedHandler{uow: uow}
}

// Handle executes the mark shipped command
func (h *MarkShippedHandler) Handle(ctx context.Context, cmd MarkShippedCommand) (*domain.Order, error) {
	tracking := strings.TrimSpace(cmd.TrackingNumber)
	date := strings.TrimSpace(cmd.ShippingDate)

	var order *domain.Order
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		var err error
		order, err = tx.Orders().FindByID(cmd.OrderID)
		if err != nil {
			return err
		}
		if tracking == "" {
			return domain.Invalid("trackingNumber", "is required")
		}
		if date == "" {
			return domain.Invalid("shippingDate", "is required")
		}
		if err := order.Ship(tracking, date); err != nil {
			return err
		}
		return tx.Orders().Update(order)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark order shipped: %w", err)
	}

	logger.Info(ctx).
		Str("order_id", order.ID).
		Str("tracking_number", order.TrackingNumber).
		Msg("Order shipped")
	return order, nil
}

// MarkDeliveredCommand represents the command to mark a shipped order as delivered
type MarkDeliveredCommand struct {
	OrderID string
}

// MarkDeliveredHandler handles mark delivered command
type MarkDeliveredHandler struct {
	uow domain.UnitOfWork
}

// NewMarkDeliveredHandler creates a new mark delivered handler
func NewMarkDeliveredHandler(uow domain.UnitOfWork) *MarkDeliveredHandler {
	return &MarkDeliveredHandler{uow: uow}
}

// Handle executes the mark delivered command
func (h *MarkDeliveredHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*domain.Order, error) {
	var order *domain.Order
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		var err error
		order, err = tx.Orders().FindByID(cmd.OrderID)
		if err != nil {
			return err
		}
		if err := order.Deliver(); err != nil {
			return err
		}
		return tx.Orders().Update(order)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	logger.Info(ctx).Str("order_id", order.ID).Msg("Order delivered")
	return order, nil
}
