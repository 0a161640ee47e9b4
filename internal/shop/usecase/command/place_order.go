package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/metrics"
	"github.com/tair/shop-console/pkg/logger"
)

// PlaceOrderCommand represents the command to place an order. ProductID is optional and only used
// to resolve ProductName when the caller picked the product by id; stock is always matched by name.
type PlaceOrderCommand struct {
	CustomerName string
	ContactInfo  string
	Source       domain.OrderSource
	ProductName  string
	ProductID    string
	Quantity     int
}

// PlaceOrderHandler handles place order command
type PlaceOrderHandler struct {
	uow       domain.UnitOfWork
	publisher domain.EventPublisher
	now       func() time.Time
}

// NewPlaceOrderHandler creates a new place order handler
func NewPlaceOrderHandler(uow domain.UnitOfWork, publisher domain.EventPublisher) *PlaceOrderHandler {
	return &PlaceOrderHandler{uow: uow, publisher: publisher, now: time.Now}
}

// Handle records the order and deducts stock from the record whose product name matches, in one
// unit of work. Stock floors at zero; a shortfall never fails the order.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	cmd.CustomerName = strings.TrimSpace(cmd.CustomerName)
	cmd.ProductName = strings.TrimSpace(cmd.ProductName)

	if cmd.CustomerName == "" {
		return nil, domain.Invalid("customerName", "is required")
	}
	if cmd.ProductName == "" && cmd.ProductID == "" {
		return nil, domain.Invalid("productName", "is required")
	}
	if cmd.Quantity < 1 {
		return nil, domain.Invalid("quantity", "must be at least 1")
	}
	if cmd.Source == "" {
		cmd.Source = domain.SourceManual
	}
	if !cmd.Source.Valid() {
		return nil, domain.Invalid("source", "must be one of manual, instagram, web")
	}

	var order domain.Order
	var stockAfter *int
	var clamped bool
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		if cmd.ProductName == "" {
			p, err := tx.Products().FindByID(cmd.ProductID)
			if err != nil {
				return err
			}
			cmd.ProductName = p.Name
		}

		order = domain.Order{
			ID:           "ord-" + uuid.NewString(),
			CustomerName: cmd.CustomerName,
			ContactInfo:  strings.TrimSpace(cmd.ContactInfo),
			Source:       cmd.Source,
			ProductName:  cmd.ProductName,
			Quantity:     cmd.Quantity,
			Status:       domain.StatusPending,
			CreatedAt:    h.now().UTC(),
		}
		if err := tx.Orders().Create(&order); err != nil {
			return err
		}

		rec, err := tx.Inventory().FindByProductName(order.ProductName)
		if domain.IsNotFound(err) {
			// orders for products without stock tracking are still accepted
			return nil
		}
		if err != nil {
			return err
		}
		clamped = rec.Deduct(order.Quantity)
		if err := tx.Inventory().Update(rec); err != nil {
			return err
		}
		stock := rec.Stock
		stockAfter = &stock
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	metrics.OrdersPlaced.WithLabelValues(string(order.Source)).Inc()
	if clamped {
		metrics.StockClamped.Inc()
	}

	event := logger.Info(ctx).
		Str("order_id", order.ID).
		Str("source", string(order.Source)).
		Str("product", order.ProductName).
		Int("quantity", order.Quantity).
		Bool("oversold", clamped)
	if stockAfter != nil {
		event = event.Int("stock_after", *stockAfter)
	}
	event.Msg("Order placed")

	if err := h.publisher.PublishOrderPlaced(ctx, domain.OrderPlacedEvent{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Source:       order.Source,
		ProductName:  order.ProductName,
		Quantity:     order.Quantity,
		StockAfter:   stockAfter,
	}); err != nil {
		logger.Warn(ctx).Err(err).Str("order_id", order.ID).Msg("Failed to publish order placed event")
	}

	return &order, nil
}
