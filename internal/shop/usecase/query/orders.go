package query

import (
	"context"
	"strings"

	"github.com/tair/shop-console/internal/shop/domain"
)

// ListOrdersQuery filters the order ledger. Search is a case-insensitive substring over customer
// name and contact info; an empty Status matches every status.
type ListOrdersQuery struct {
	Search string
	Status domain.OrderStatus
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	uow domain.UnitOfWork
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(uow domain.UnitOfWork) *ListOrdersHandler {
	return &ListOrdersHandler{uow: uow}
}

// Handle returns matching orders, newest first
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]domain.Order, error) {
	var orders []domain.Order
	err := h.uow.View(ctx, func(tx domain.Tx) error {
		orders = tx.Orders().FindAll()
		return nil
	})
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" && q.Status == "" {
		return orders, nil
	}

	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), term) &&
			!strings.Contains(strings.ToLower(o.ContactInfo), term) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered, nil
}
