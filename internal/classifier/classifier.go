// Package classifier triages inbound customer messages into an automatic reply or the human queue.
// Classification is deterministic keyword matching against a point-in-time view of orders and stock.
package classifier

import "github.com/tair/shop-console/internal/shop/domain"

// Status is the triage lane of a classified message.
type Status string

const (
	AutoReplied    Status = "Auto_Replied"
	ManualRequired Status = "Manual_Required"
)

// Classification is the triage decision for one message.
type Classification struct {
	IsComplaint    bool   `json:"isComplaint"`
	Status         Status `json:"status"`
	Analysis       string `json:"aiAnalysis"`
	SuggestedReply string `json:"suggestedReply,omitempty"`
}

// Input is a message plus the read-only lookups the rules consult.
type Input struct {
	Text      string
	Sender    string
	Orders    []domain.Order
	Inventory []domain.InventoryRecord
}

// Classify evaluates Rules in order and returns the first match. It has no side effects.
func Classify(in Input) Classification {
	for _, rule := range Rules {
		if c, ok := rule.Apply(in); ok {
			return c
		}
	}
	// unreachable while the fallback rule is last
	return autoReplied(fallbackAnalysis, GreetingReply)
}
