package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/media"
	"github.com/tair/shop-console/pkg/logger"
)

// UpdateProductCommand represents a partial product update. Nil fields are left unchanged.
type UpdateProductCommand struct {
	ID        string
	Name      *string
	BasePrice *int64
	Image     *string
}

// UpdateProductHandler handles update product command
type UpdateProductHandler struct {
	uow    domain.UnitOfWork
	images media.ImageStore
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(uow domain.UnitOfWork, images media.ImageStore) *UpdateProductHandler {
	return &UpdateProductHandler{uow: uow, images: images}
}

// Handle merges the patch and mirrors name/image changes onto the product's inventory record.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == "" {
		return nil, domain.Invalid("id", "is required")
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, domain.Invalid("name", "cannot be empty")
		}
		cmd.Name = &name
	}
	if cmd.BasePrice != nil && *cmd.BasePrice < 0 {
		return nil, domain.Invalid("basePrice", "cannot be negative")
	}
	if cmd.Image != nil {
		image, err := h.images.Resolve(ctx, *cmd.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product image: %w", err)
		}
		cmd.Image = &image
	}

	patch := domain.ProductPatch{Name: cmd.Name, BasePrice: cmd.BasePrice, Image: cmd.Image}

	var product *domain.Product
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		var err error
		product, err = tx.Products().FindByID(cmd.ID)
		if err != nil {
			return err
		}

		mirrorChanged := patch.Apply(product)
		if err := tx.Products().Update(product); err != nil {
			return err
		}
		if !mirrorChanged {
			return nil
		}

		rec, err := tx.Inventory().FindByProductID(product.ID)
		if err != nil {
			return err
		}
		rec.ProductName = product.Name
		if patch.Image != nil {
			rec.Image = product.Image
			if rec.Image == "" {
				rec.Image = domain.DefaultInventoryImage
			}
		}
		return tx.Inventory().Update(rec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.Info(ctx).Str("product_id", product.ID).Msg("Product updated")
	return product, nil
}
