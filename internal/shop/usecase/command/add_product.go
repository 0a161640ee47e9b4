package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/media"
	"github.com/tair/shop-console/internal/shop/metrics"
	"github.com/tair/shop-console/pkg/logger"
)

// AddProductCommand represents the command to add a product to the catalog
type AddProductCommand struct {
	Name      string
	Category  string
	BasePrice int64
	Image     string
}

// AddProductHandler handles add product command
type AddProductHandler struct {
	uow    domain.UnitOfWork
	images media.ImageStore
}

// NewAddProductHandler creates a new add product handler
func NewAddProductHandler(uow domain.UnitOfWork, images media.ImageStore) *AddProductHandler {
	return &AddProductHandler{uow: uow, images: images}
}

// Handle creates the product and its zero-stock inventory record in one unit of work.
func (h *AddProductHandler) Handle(ctx context.Context, cmd AddProductCommand) (*domain.Product, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Category = strings.TrimSpace(cmd.Category)

	if cmd.Name == "" {
		return nil, domain.Invalid("name", "is required")
	}
	if cmd.Category == "" {
		return nil, domain.Invalid("category", "is required")
	}
	if cmd.BasePrice < 0 {
		return nil, domain.Invalid("basePrice", "cannot be negative")
	}

	image, err := h.images.Resolve(ctx, cmd.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product image: %w", err)
	}

	var product domain.Product
	var catalogSize int
	err = h.uow.Do(ctx, func(tx domain.Tx) error {
		prefix := domain.FallbackPrefix
		if cat, err := tx.Categories().FindByName(cmd.Category); err == nil {
			prefix = cat.Prefix
		}

		existing := tx.Products().FindAll()
		product = domain.Product{
			ID:        "p-" + uuid.NewString(),
			Code:      domain.FormatProductCode(prefix, domain.NextCodeSequence(existing)),
			Name:      cmd.Name,
			Category:  cmd.Category,
			BasePrice: cmd.BasePrice,
			Image:     image,
		}
		if err := tx.Products().Create(&product); err != nil {
			return err
		}

		recordImage := image
		if recordImage == "" {
			recordImage = domain.DefaultInventoryImage
		}
		catalogSize = len(existing) + 1
		return tx.Inventory().Create(&domain.InventoryRecord{
			ID:          "inv-" + uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Stock:       0,
			Image:       recordImage,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	metrics.CatalogSize.Set(float64(catalogSize))
	logger.Info(ctx).
		Str("product_id", product.ID).
		Str("code", product.Code).
		Str("category", product.Category).
		Msg("Product added")

	return &product, nil
}
