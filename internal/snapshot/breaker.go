package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tair/shop-console/pkg/logger"
)

// CircuitState represents the state of a circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half-open"
)

// ErrCircuitOpen is returned by Put while the backend is considered down.
var ErrCircuitOpen = errors.New("snapshot circuit breaker is open")

// BreakerBlobStore stops hammering a failing backend with writes. After maxFailures consecutive
// Put failures it rejects writes for cooldown, then lets writes through again in half-open state;
// successThreshold successes close it, any failure reopens it. Get is never blocked.
type BreakerBlobStore struct {
	next             BlobStore
	maxFailures      int
	cooldown         time.Duration
	successThreshold int

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successCount    int
	lastStateChange time.Time
	now             func() time.Time
}

// NewBreakerBlobStore creates a breaker around next
func NewBreakerBlobStore(next BlobStore, maxFailures int, cooldown time.Duration) *BreakerBlobStore {
	return &BreakerBlobStore{
		next:             next,
		maxFailures:      maxFailures,
		cooldown:         cooldown,
		successThreshold: 3,
		state:            StateClosed,
		now:              time.Now,
		lastStateChange:  time.Now(),
	}
}

func (b *BreakerBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	return b.next.Get(ctx, key)
}

func (b *BreakerBlobStore) Put(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	if b.state == StateOpen && b.now().Sub(b.lastStateChange) > b.cooldown {
		b.transition(ctx, StateHalfOpen)
	}
	open := b.state == StateOpen
	b.mu.Unlock()

	if open {
		return ErrCircuitOpen
	}

	err := b.next.Put(ctx, key, value)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure(ctx)
	} else {
		b.onSuccess(ctx)
	}
	return err
}

// State returns the current state
func (b *BreakerBlobStore) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BreakerBlobStore) onFailure(ctx context.Context) {
	b.failures++
	switch {
	case b.state == StateHalfOpen:
		b.transition(ctx, StateOpen)
	case b.failures >= b.maxFailures:
		b.transition(ctx, StateOpen)
	}
}

func (b *BreakerBlobStore) onSuccess(ctx context.Context) {
	switch b.state {
	case StateHalfOpen:
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.transition(ctx, StateClosed)
		}
	case StateClosed:
		b.failures = 0
	}
}

// transition must be called with mu held.
func (b *BreakerBlobStore) transition(ctx context.Context, to CircuitState) {
	from := b.state
	b.state = to
	b.lastStateChange = b.now()
	b.successCount = 0
	if to == StateClosed {
		b.failures = 0
	}

	event := logger.Info(ctx)
	if to == StateOpen {
		event = logger.Error(ctx).Int("failures", b.failures)
	}
	event.
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("Snapshot circuit breaker state changed")
}
