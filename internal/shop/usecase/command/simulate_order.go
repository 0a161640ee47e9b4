package command

import (
	"context"
	"math/rand/v2"

	"github.com/tair/shop-console/internal/shop/domain"
)

// SyntheticCustomer is a demo customer used by simulated web orders.
type SyntheticCustomer struct {
	Name    string
	Contact string
}

// SyntheticCustomers is the pool simulated orders draw from.
var SyntheticCustomers = []SyntheticCustomer{
	{Name: "정하은", Contact: "@haeun_daily"},
	{Name: "윤도현", Contact: "@dohyun.y"},
	{Name: "한지우", Contact: "jiwoo@example.com"},
	{Name: "오세린", Contact: "@serin_closet"},
	{Name: "강민호", Contact: "010-1234-5678"},
}

// SimulateOrderHandler places demo web orders. It exists for demo data only.
type SimulateOrderHandler struct {
	uow   domain.UnitOfWork
	place *PlaceOrderHandler
	intn  func(n int) int
}

// NewSimulateOrderHandler creates a new simulate order handler
func NewSimulateOrderHandler(uow domain.UnitOfWork, place *PlaceOrderHandler) *SimulateOrderHandler {
	return &SimulateOrderHandler{uow: uow, place: place, intn: rand.IntN}
}

// Handle picks a random product and customer and places a quantity-1 web order.
func (h *SimulateOrderHandler) Handle(ctx context.Context) (*domain.Order, error) {
	var products []domain.Product
	if err := h.uow.View(ctx, func(tx domain.Tx) error {
		products = tx.Products().FindAll()
		return nil
	}); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.Invalid("catalog", "has no products to order")
	}

	product := products[h.intn(len(products))]
	customer := SyntheticCustomers[h.intn(len(SyntheticCustomers))]

	return h.place.Handle(ctx, PlaceOrderCommand{
		CustomerName: customer.Name,
		ContactInfo:  customer.Contact,
		Source:       domain.SourceWeb,
		ProductName:  product.Name,
		Quantity:     1,
	})
}
