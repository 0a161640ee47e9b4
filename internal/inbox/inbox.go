// Package inbox keeps the triage feed of inbound customer messages. Each message is classified on
// arrival and shown in either the manual lane (needs a human) or the auto lane (reply suggested).
package inbox

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/shop-console/internal/classifier"
	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/logger"
)

// Lane selects one side of the feed.
type Lane string

const (
	LaneManual Lane = "manual"
	LaneAuto   Lane = "auto"
)

// MaxMessages bounds the feed; the oldest messages are dropped first.
const MaxMessages = 500

// Message is one received message with its triage decision.
type Message struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	classifier.Classification
}

// Classifier classifies one message against the current shop state.
type Classifier interface {
	Classify(ctx context.Context, text, sender string) (classifier.Classification, error)
}

// Feed is a concurrency-safe, newest-first message list.
type Feed struct {
	mu         sync.RWMutex
	messages   []Message
	classifier Classifier
	now        func() time.Time
}

// NewFeed creates an empty feed
func NewFeed(c Classifier) *Feed {
	return &Feed{classifier: c, now: time.Now}
}

// Receive classifies and stores a message
func (f *Feed) Receive(ctx context.Context, username, content string) (*Message, error) {
	username = strings.TrimSpace(username)
	content = strings.TrimSpace(content)
	if username == "" {
		return nil, domain.Invalid("username", "is required")
	}
	if content == "" {
		return nil, domain.Invalid("content", "is required")
	}

	result, err := f.classifier.Classify(ctx, content, username)
	if err != nil {
		return nil, err
	}

	msg := Message{
		ID:             "msg-" + uuid.NewString(),
		Username:       username,
		Content:        content,
		Timestamp:      f.now().UTC(),
		Classification: result,
	}

	f.mu.Lock()
	f.messages = append([]Message{msg}, f.messages...)
	if len(f.messages) > MaxMessages {
		f.messages = f.messages[:MaxMessages]
	}
	f.mu.Unlock()

	logger.Info(ctx).
		Str("message_id", msg.ID).
		Str("username", username).
		Str("status", string(result.Status)).
		Msg("Inbox message received")
	return &msg, nil
}

// List returns the messages of one lane, newest first. An empty lane lists everything.
func (f *Feed) List(lane Lane) ([]Message, error) {
	var want classifier.Status
	switch lane {
	case "":
	case LaneManual:
		want = classifier.ManualRequired
	case LaneAuto:
		want = classifier.AutoReplied
	default:
		return nil, domain.Invalid("lane", "must be manual or auto")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Message, 0, len(f.messages))
	for _, m := range f.messages {
		if want == "" || m.Status == want {
			out = append(out, m)
		}
	}
	return out, nil
}

// ManualCount is the number of messages waiting for a human reply.
func (f *Feed) ManualCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := 0
	for _, m := range f.messages {
		if m.Status == classifier.ManualRequired {
			n++
		}
	}
	return n
}

// DemoMessages are received at startup so the feed is not empty on first run.
var DemoMessages = []struct{ Username, Content string }{
	{"김민지", "배송 언제 되나요?"},
	{"박진상", "옷이 너무 늦게 오잖아요! 환불해줘요!"},
	{"최수정", "자수 에코백 재고 있나요?"},
}

// SeedDemo receives DemoMessages in order.
func (f *Feed) SeedDemo(ctx context.Context) error {
	for _, m := range DemoMessages {
		if _, err := f.Receive(ctx, m.Username, m.Content); err != nil {
			return err
		}
	}
	return nil
}
