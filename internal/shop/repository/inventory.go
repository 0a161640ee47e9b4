package repository

import "github.com/tair/shop-console/internal/shop/domain"

type inventoryRepository struct {
	tx *memoryTx
}

func (r *inventoryRepository) FindAll() []domain.InventoryRecord {
	return append([]domain.InventoryRecord(nil), r.tx.data.Inventory...)
}

func (r *inventoryRepository) FindByProductID(productID string) (*domain.InventoryRecord, error) {
	for _, rec := range r.tx.data.Inventory {
		if rec.ProductID == productID {
			found := rec
			return &found, nil
		}
	}
	return nil, domain.NotFound("inventory record for product", productID)
}

func (r *inventoryRepository) FindByProductName(name string) (*domain.InventoryRecord, error) {
	for _, rec := range r.tx.data.Inventory {
		if rec.ProductName == name {
			found := rec
			return &found, nil
		}
	}
	return nil, domain.NotFound("inventory record named", name)
}

func (r *inventoryRepository) Create(record *domain.InventoryRecord) error {
	if err := r.tx.write(domain.KeyInventory); err != nil {
		return err
	}
	r.tx.data.Inventory = append(r.tx.data.Inventory, *record)
	return nil
}

// Update replaces the record with the same id.
func (r *inventoryRepository) Update(record *domain.InventoryRecord) error {
	if err := r.tx.write(domain.KeyInventory); err != nil {
		return err
	}
	for i := range r.tx.data.Inventory {
		if r.tx.data.Inventory[i].ID == record.ID {
			r.tx.data.Inventory[i] = *record
			return nil
		}
	}
	return domain.NotFound("inventory record", record.ID)
}

func (r *inventoryRepository) DeleteByProductID(productID string) error {
	if err := r.tx.write(domain.KeyInventory); err != nil {
		return err
	}
	kept := r.tx.data.Inventory[:0]
	removed := false
	for _, rec := range r.tx.data.Inventory {
		if rec.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	r.tx.data.Inventory = kept
	if !removed {
		return domain.NotFound("inventory record for product", productID)
	}
	return nil
}
