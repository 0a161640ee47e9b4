package query

import (
	"context"

	"github.com/tair/shop-console/internal/shop/domain"
)

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	uow domain.UnitOfWork
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(uow domain.UnitOfWork) *ListProductsHandler {
	return &ListProductsHandler{uow: uow}
}

// Handle returns the catalog in insertion order
func (h *ListProductsHandler) Handle(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := h.uow.View(ctx, func(tx domain.Tx) error {
		products = tx.Products().FindAll()
		return nil
	})
	return products, err
}

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	uow domain.UnitOfWork
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(uow domain.UnitOfWork) *GetProductHandler {
	return &GetProductHandler{uow: uow}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	var product *domain.Product
	err := h.uow.View(ctx, func(tx domain.Tx) error {
		var err error
		product, err = tx.Products().FindByID(q.ID)
		return err
	})
	return product, err
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	uow domain.UnitOfWork
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(uow domain.UnitOfWork) *ListInventoryHandler {
	return &ListInventoryHandler{uow: uow}
}

// Handle returns every inventory record
func (h *ListInventoryHandler) Handle(ctx context.Context) ([]domain.InventoryRecord, error) {
	var records []domain.InventoryRecord
	err := h.uow.View(ctx, func(tx domain.Tx) error {
		records = tx.Inventory().FindAll()
		return nil
	})
	return records, err
}

// DashboardStats summarizes the console for the dashboard header.
type DashboardStats struct {
	TotalProducts   int `json:"totalProducts"`
	TotalStock      int `json:"totalStock"`
	OutOfStock      int `json:"outOfStock"`
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
	ShippedOrders   int `json:"shippedOrders"`
	DeliveredOrders int `json:"deliveredOrders"`
	TotalCategories int `json:"totalCategories"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	uow domain.UnitOfWork
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(uow domain.UnitOfWork) *GetStatsHandler {
	return &GetStatsHandler{uow: uow}
}

// Handle executes the get stats query against one consistent view
func (h *GetStatsHandler) Handle(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	err := h.uow.View(ctx, func(tx domain.Tx) error {
		stats.TotalProducts = len(tx.Products().FindAll())
		stats.TotalCategories = len(tx.Categories().FindAll())

		for _, rec := range tx.Inventory().FindAll() {
			stats.TotalStock += rec.Stock
			if !rec.InStock() {
				stats.OutOfStock++
			}
		}

		orders := tx.Orders().FindAll()
		stats.TotalOrders = len(orders)
		for _, o := range orders {
			switch o.Status {
			case domain.StatusPending:
				stats.PendingOrders++
			case domain.StatusShipped:
				stats.ShippedOrders++
			case domain.StatusDelivered:
				stats.DeliveredOrders++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
