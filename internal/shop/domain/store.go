package domain

import "context"

// SnapshotKey names one independently persisted store. The string values are stable: older
// snapshots written under them must stay readable.
type SnapshotKey string

const (
	KeyCatalog       SnapshotKey = "catalog"
	KeyInventory     SnapshotKey = "inventory"
	KeyOrders        SnapshotKey = "orders"
	KeyCategories    SnapshotKey = "productCategories"
	KeyAdminPassword SnapshotKey = "adminPassword"
	KeyInstagram     SnapshotKey = "instagramConfig"
)

// AllSnapshotKeys lists every key in load order.
var AllSnapshotKeys = []SnapshotKey{
	KeyCatalog, KeyInventory, KeyOrders, KeyCategories, KeyAdminPassword, KeyInstagram,
}

// Dataset is the full in-memory state of the console.
type Dataset struct {
	Products   []Product
	Inventory  []InventoryRecord
	Orders     []Order
	Categories []Category
	Settings   Settings
}

// Clone returns a copy that shares no slice backing arrays with d.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Products:   append([]Product(nil), d.Products...),
		Inventory:  append([]InventoryRecord(nil), d.Inventory...),
		Orders:     append([]Order(nil), d.Orders...),
		Categories: append([]Category(nil), d.Categories...),
		Settings:   d.Settings,
	}
	if h := d.Settings.Instagram.Handle; h != nil {
		v := *h
		out.Settings.Instagram.Handle = &v
	}
	if at := d.Settings.Instagram.ConnectedAt; at != nil {
		v := *at
		out.Settings.Instagram.ConnectedAt = &v
	}
	return out
}

// Tx gives access to every store inside one unit of work.
type Tx interface {
	Products() ProductRepository
	Inventory() InventoryRepository
	Orders() OrderRepository
	Categories() CategoryRepository
	Settings() SettingsRepository
}

// UnitOfWork serializes access to the stores. Do runs fn as one exclusive, atomic mutation: if fn
// returns an error every change it made is discarded. View runs fn against a consistent read-only
// snapshot; mutations inside View fail.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(tx Tx) error) error
}

// OrderPlacedEvent is announced after an order and its stock deduction have been committed.
type OrderPlacedEvent struct {
	OrderID      string      `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	Source       OrderSource `json:"source"`
	ProductName  string      `json:"product_name"`
	Quantity     int         `json:"quantity"`
	StockAfter   *int        `json:"stock_after,omitempty"`
}

// EventPublisher announces committed domain events. Implementations are best-effort.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, OrderPlacedEvent) error { return nil }
