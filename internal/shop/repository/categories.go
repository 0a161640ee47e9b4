package repository

import "github.com/tair/shop-console/internal/shop/domain"

type categoryRepository struct {
	tx *memoryTx
}

func (r *categoryRepository) FindAll() []domain.Category {
	return append([]domain.Category(nil), r.tx.data.Categories...)
}

func (r *categoryRepository) FindByName(name string) (*domain.Category, error) {
	for _, c := range r.tx.data.Categories {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, domain.NotFound("category", name)
}

func (r *categoryRepository) FindByPrefix(prefix string) (*domain.Category, error) {
	for _, c := range r.tx.data.Categories {
		if c.Prefix == prefix {
			found := c
			return &found, nil
		}
	}
	return nil, domain.NotFound("category prefix", prefix)
}

func (r *categoryRepository) Create(category *domain.Category) error {
	if err := r.tx.write(domain.KeyCategories); err != nil {
		return err
	}
	r.tx.data.Categories = append(r.tx.data.Categories, *category)
	return nil
}

// Delete is unconditional: deleting an unknown id is a no-op.
func (r *categoryRepository) Delete(id string) error {
	if err := r.tx.write(domain.KeyCategories); err != nil {
		return err
	}
	for i, c := range r.tx.data.Categories {
		if c.ID == id {
			r.tx.data.Categories = append(r.tx.data.Categories[:i], r.tx.data.Categories[i+1:]...)
			break
		}
	}
	return nil
}
