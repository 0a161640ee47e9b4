package repository

import "github.com/tair/shop-console/internal/shop/domain"

type catalogRepository struct {
	tx *memoryTx
}

func (r *catalogRepository) FindAll() []domain.Product {
	return append([]domain.Product(nil), r.tx.data.Products...)
}

func (r *catalogRepository) FindByID(id string) (*domain.Product, error) {
	for _, p := range r.tx.data.Products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, domain.NotFound("product", id)
}

func (r *catalogRepository) Create(product *domain.Product) error {
	if err := r.tx.write(domain.KeyCatalog); err != nil {
		return err
	}
	r.tx.data.Products = append(r.tx.data.Products, *product)
	return nil
}

func (r *catalogRepository) Update(product *domain.Product) error {
	if err := r.tx.write(domain.KeyCatalog); err != nil {
		return err
	}
	for i := range r.tx.data.Products {
		if r.tx.data.Products[i].ID == product.ID {
			r.tx.data.Products[i] = *product
			return nil
		}
	}
	return domain.NotFound("product", product.ID)
}

func (r *catalogRepository) Delete(id string) error {
	if err := r.tx.write(domain.KeyCatalog); err != nil {
		return err
	}
	for i, p := range r.tx.data.Products {
		if p.ID == id {
			r.tx.data.Products = append(r.tx.data.Products[:i], r.tx.data.Products[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("product", id)
}
