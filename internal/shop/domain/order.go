package domain

import "time"

// OrderSource identifies the channel an order came from.
type OrderSource string

const (
	SourceManual    OrderSource = "manual"
	SourceInstagram OrderSource = "instagram"
	SourceWeb       OrderSource = "web"
)

// Valid reports whether s is a known source.
func (s OrderSource) Valid() bool {
	switch s {
	case SourceManual, SourceInstagram, SourceWeb:
		return true
	}
	return false
}

// OrderStatus is the shipment lifecycle state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	// StatusCancelled is never stored: cancelling an order deletes it.
	StatusCancelled OrderStatus = "Cancelled"
)

// Order is a customer purchase. ProductName is a snapshot, not a reference.
type Order struct {
	ID             string      `json:"id"`
	CustomerName   string      `json:"customerName"`
	ContactInfo    string      `json:"contactInfo,omitempty"`
	Source         OrderSource `json:"source"`
	ProductName    string      `json:"productName"`
	Quantity       int         `json:"quantity"`
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	ShippingDate   string      `json:"shippingDate,omitempty"`
	CreatedAt      time.Time   `json:"createdAt,omitempty"`
}

// Ship moves the order to Shipped and records the tracking details.
func (o *Order) Ship(trackingNumber, shippingDate string) error {
	if o.Status == StatusDelivered {
		return Invalid("status", "delivered orders cannot be shipped again")
	}
	o.Status = StatusShipped
	o.TrackingNumber = trackingNumber
	o.ShippingDate = shippingDate
	return nil
}

// Deliver moves a shipped order to Delivered.
func (o *Order) Deliver() error {
	if o.Status != StatusShipped {
		return Invalid("status", "only shipped orders can be delivered")
	}
	o.Status = StatusDelivered
	return nil
}

// OrderRepository defines the contract for order ledger access. FindAll returns newest first.
type OrderRepository interface {
	FindAll() []Order
	FindByID(id string) (*Order, error)
	Create(order *Order) error
	Update(order *Order) error
	Delete(id string) error
}
