package kafka

import (
	"time"

	"github.com/tair/shop-console/internal/shop/domain"
)

// OrderPlacedMessage is the wire form of domain.OrderPlacedEvent
type OrderPlacedMessage struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	domain.OrderPlacedEvent
}

// InboundMessageEvent is a customer DM forwarded by the Instagram bridge
type InboundMessageEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced    = "order.placed"
	EventTypeInboundMessage = "inbox.message_received"
)

// Header keys
const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
)
