package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/metrics"
)

func TestPublishOrderPlaced(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var msg OrderPlacedMessage
		if err := json.Unmarshal(val, &msg); err != nil {
			return err
		}
		if msg.EventType != EventTypeOrderPlaced || msg.OrderID != "ord-1" || msg.Quantity != 2 {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := newPublisher(producer, "shop-order-placed")
	stock := 3
	err := p.PublishOrderPlaced(context.Background(), domain.OrderPlacedEvent{
		OrderID: "ord-1", CustomerName: "Kim", Source: domain.SourceWeb,
		ProductName: "실크 스카프", Quantity: 2, StockAfter: &stock,
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishOrderPlacedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newPublisher(producer, "shop-order-placed")
	err := p.PublishOrderPlaced(context.Background(), domain.OrderPlacedEvent{OrderID: "ord-1", Quantity: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func inboundMessage(t *testing.T, eventType string, event InboundMessageEvent) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	msg := &sarama.ConsumerMessage{Topic: "shop-inbound-messages", Value: payload}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(eventType)},
			{Key: []byte(headerEventID), Value: []byte("evt-1")},
		}
	}
	return msg
}

func TestHandleInboundMessage(t *testing.T) {
	c := newConsumer(nil, "shop-console", []string{"shop-inbound-messages"})

	type received struct{ username, content string }
	var got []received
	c.RegisterHandler(EventTypeInboundMessage, InboundMessageHandler(func(_ context.Context, u, content string) error {
		got = append(got, received{u, content})
		return nil
	}))
	h := &consumerGroupHandler{consumer: c}
	ctx := context.Background()

	err := h.handleMessage(ctx, inboundMessage(t, EventTypeInboundMessage, InboundMessageEvent{Username: "최수정", Content: "재고 있나요?"}))
	require.NoError(t, err)
	assert.Equal(t, []received{{"최수정", "재고 있나요?"}}, got)

	assert.ErrorIs(t, h.handleMessage(ctx, inboundMessage(t, "", InboundMessageEvent{})), errMissingEventType)
	assert.ErrorIs(t, h.handleMessage(ctx, inboundMessage(t, "unknown", InboundMessageEvent{})), errNoHandler)

	bad := &sarama.ConsumerMessage{
		Value:   []byte("{"),
		Headers: []*sarama.RecordHeader{{Key: []byte(headerEventType), Value: []byte(EventTypeInboundMessage)}},
	}
	assert.Error(t, h.handleMessage(ctx, bad))
	assert.Len(t, got, 1)
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	marked []int64
}

func (s *fakeSession) Context() context.Context { return context.Background() }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestConsumeClaimMarksAndCountsEveryMessage(t *testing.T) {
	const topic = "shop-inbound-claim-test"
	c := newConsumer(nil, "shop-console", []string{topic})
	c.RegisterHandler(EventTypeInboundMessage, InboundMessageHandler(func(context.Context, string, string) error {
		return nil
	}))
	h := &consumerGroupHandler{consumer: c}

	good := inboundMessage(t, EventTypeInboundMessage, InboundMessageEvent{Username: "김민지", Content: "배송 언제 되나요?"})
	good.Topic, good.Offset = topic, 1
	untyped := inboundMessage(t, "", InboundMessageEvent{})
	untyped.Topic, untyped.Offset = topic, 2

	claim := fakeClaim{messages: make(chan *sarama.ConsumerMessage, 2)}
	claim.messages <- good
	claim.messages <- untyped
	close(claim.messages)

	session := &fakeSession{}
	require.NoError(t, h.ConsumeClaim(session, claim))

	assert.Equal(t, []int64{1, 2}, session.marked)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EventsConsumed.WithLabelValues(topic, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EventsConsumed.WithLabelValues(topic, "error")))
}
