package command

import (
	"context"
	"fmt"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/logger"
)

// SetStockCommand is an administrative stock override. A non-nil RestockDate replaces the stored
// date; an empty string clears it.
type SetStockCommand struct {
	ProductID   string
	Quantity    int
	RestockDate *string
}

// SetStockHandler handles set stock command
type SetStockHandler struct {
	uow domain.UnitOfWork
}

// NewSetStockHandler creates a new set stock handler
func NewSetStockHandler(uow domain.UnitOfWork) *SetStockHandler {
	return &SetStockHandler{uow: uow}
}

// Handle executes the set stock command
func (h *SetStockHandler) Handle(ctx context.Context, cmd SetStockCommand) (*domain.InventoryRecord, error) {
	if cmd.ProductID == "" {
		return nil, domain.Invalid("productId", "is required")
	}
	if cmd.Quantity < 0 {
		return nil, domain.Invalid("quantity", "cannot be negative")
	}

	var rec *domain.InventoryRecord
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		var err error
		rec, err = tx.Inventory().FindByProductID(cmd.ProductID)
		if err != nil {
			return err
		}
		rec.Stock = cmd.Quantity
		if cmd.RestockDate != nil {
			rec.RestockDate = *cmd.RestockDate
		}
		return tx.Inventory().Update(rec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set stock: %w", err)
	}

	logger.Info(ctx).
		Str("product_id", cmd.ProductID).
		Int("stock", rec.Stock).
		Msg("Stock updated")
	return rec, nil
}
