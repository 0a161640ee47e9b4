package repository

import "github.com/tair/shop-console/internal/shop/domain"

type orderRepository struct {
	tx *memoryTx
}

func (r *orderRepository) FindAll() []domain.Order {
	return append([]domain.Order(nil), r.tx.data.Orders...)
}

func (r *orderRepository) FindByID(id string) (*domain.Order, error) {
	for _, o := range r.tx.data.Orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, domain.NotFound("order", id)
}

// Create prepends, keeping the ledger newest first.
func (r *orderRepository) Create(order *domain.Order) error {
	if err := r.tx.write(domain.KeyOrders); err != nil {
		return err
	}
	r.tx.data.Orders = append([]domain.Order{*order}, r.tx.data.Orders...)
	return nil
}

func (r *orderRepository) Update(order *domain.Order) error {
	if err := r.tx.write(domain.KeyOrders); err != nil {
		return err
	}
	for i := range r.tx.data.Orders {
		if r.tx.data.Orders[i].ID == order.ID {
			r.tx.data.Orders[i] = *order
			return nil
		}
	}
	return domain.NotFound("order", order.ID)
}

func (r *orderRepository) Delete(id string) error {
	if err := r.tx.write(domain.KeyOrders); err != nil {
		return err
	}
	for i, o := range r.tx.data.Orders {
		if o.ID == id {
			r.tx.data.Orders = append(r.tx.data.Orders[:i], r.tx.data.Orders[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("order", id)
}
