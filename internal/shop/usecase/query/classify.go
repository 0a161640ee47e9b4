package query

import (
	"context"

	"github.com/tair/shop-console/internal/classifier"
	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/metrics"
	"github.com/tair/shop-console/pkg/logger"
)

// ClassifyMessageQuery is one inbound customer message.
type ClassifyMessageQuery struct {
	Text   string
	Sender string
}

// ClassifyMessageHandler classifies messages against a point-in-time view of orders and stock.
type ClassifyMessageHandler struct {
	uow domain.UnitOfWork
}

// NewClassifyMessageHandler creates a new classify message handler
func NewClassifyMessageHandler(uow domain.UnitOfWork) *ClassifyMessageHandler {
	return &ClassifyMessageHandler{uow: uow}
}

// Handle executes the classify message query. It never mutates state.
func (h *ClassifyMessageHandler) Handle(ctx context.Context, q ClassifyMessageQuery) (classifier.Classification, error) {
	in := classifier.Input{Text: q.Text, Sender: q.Sender}
	if err := h.uow.View(ctx, func(tx domain.Tx) error {
		in.Orders = tx.Orders().FindAll()
		in.Inventory = tx.Inventory().FindAll()
		return nil
	}); err != nil {
		return classifier.Classification{}, err
	}

	result := classifier.Classify(in)
	metrics.MessagesClassified.WithLabelValues(string(result.Status)).Inc()
	logger.Debug(ctx).
		Str("sender", q.Sender).
		Str("status", string(result.Status)).
		Bool("complaint", result.IsComplaint).
		Msg("Message classified")
	return result, nil
}

// Classify adapts the handler to the inbox classifier contract.
func (h *ClassifyMessageHandler) Classify(ctx context.Context, text, sender string) (classifier.Classification, error) {
	return h.Handle(ctx, ClassifyMessageQuery{Text: text, Sender: sender})
}
