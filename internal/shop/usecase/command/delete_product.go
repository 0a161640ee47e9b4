package command

import (
	"context"
	"fmt"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/metrics"
	"github.com/tair/shop-console/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles delete product command
type DeleteProductHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(uow domain.UnitOfWork) *DeleteProductHandler {
	return &DeleteProductHandler{uow: uow}
}

// Handle removes the product and its inventory record together. Orders are not touched.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == "" {
		return domain.Invalid("id", "is required")
	}

	var remaining int
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		if err := tx.Products().Delete(cmd.ID); err != nil {
			return err
		}
		if err := tx.Inventory().DeleteByProductID(cmd.ID); err != nil && !domain.IsNotFound(err) {
			return err
		}
		remaining = len(tx.Products().FindAll())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	metrics.CatalogSize.Set(float64(remaining))
	logger.Info(ctx).Str("product_id", cmd.ID).Msg("Product deleted")
	return nil
}
