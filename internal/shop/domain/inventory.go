package domain

// DefaultInventoryImage is shown for products created without an image.
const DefaultInventoryImage = "✨"

// InventoryRecord is the stock counter of one product. ProductName and Image mirror the product.
type InventoryRecord struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Stock       int    `json:"stock"`
	RestockDate string `json:"restockDate,omitempty"`
	Image       string `json:"image"`
}

// Deduct lowers stock by qty, flooring at zero. It reports whether the floor was hit.
func (r *InventoryRecord) Deduct(qty int) (clamped bool) {
	if qty >= r.Stock {
		clamped = qty > r.Stock
		r.Stock = 0
		return clamped
	}
	r.Stock -= qty
	return false
}

// InStock reports whether at least one unit is available.
func (r *InventoryRecord) InStock() bool {
	return r.Stock > 0
}

// InventoryRepository defines the contract for inventory data access
type InventoryRepository interface {
	FindAll() []InventoryRecord
	FindByProductID(productID string) (*InventoryRecord, error)
	// FindByProductName is the single place where orders are linked to stock. The link is the
	// denormalized display name, not the product id; the first record in ledger order wins.
	FindByProductName(name string) (*InventoryRecord, error)
	Create(record *InventoryRecord) error
	Update(record *InventoryRecord) error
	DeleteByProductID(productID string) error
}
