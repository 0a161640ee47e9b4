package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/logger"
)

// ErrReadOnly is returned by mutations attempted inside View.
var ErrReadOnly = errors.New("mutation inside read-only transaction")

// Persister writes the listed stores of a committed dataset to durable storage.
type Persister interface {
	Persist(ctx context.Context, ds *domain.Dataset, keys []domain.SnapshotKey) error
}

// MemoryStore owns the console state. Writers are serialized by one mutex; readers share it.
type MemoryStore struct {
	mu        sync.RWMutex
	data      domain.Dataset
	persister Persister
	// unsaved holds keys whose last write failed; they are retried with the next commit.
	unsaved   map[domain.SnapshotKey]bool
}

// NewMemoryStore creates a store over an initial dataset. persister may be nil.
func NewMemoryStore(initial domain.Dataset, persister Persister) *MemoryStore {
	return &MemoryStore{data: initial.Clone(), persister: persister, unsaved: make(map[domain.SnapshotKey]bool)}
}

// Do runs fn as one atomic mutation. On error the state is restored; on success the stores fn
// touched are handed to the persister before the lock is released, so snapshots are written in
// commit order. Persistence failures are logged and do not fail the mutation; the failed keys are
// written again with the next successful mutation. Writes are not bound to ctx cancellation.
func (s *MemoryStore) Do(ctx context.Context, fn func(tx domain.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.data.Clone()
	tx := &memoryTx{data: &s.data, dirty: make(map[domain.SnapshotKey]bool)}

	if err := fn(tx); err != nil {
		s.data = backup
		return err
	}

	if s.persister == nil {
		return nil
	}
	for k := range s.unsaved {
		tx.dirty[k] = true
	}
	keys := tx.dirtyKeys()
	if len(keys) == 0 {
		return nil
	}

	if err := s.persister.Persist(context.WithoutCancel(ctx), &s.data, keys); err != nil {
		// Persist reports joined failures, so every key of this commit stays pending.
		for _, k := range keys {
			s.unsaved[k] = true
		}
		logger.Warn(ctx).Err(err).Strs("pending_keys", keyStrings(keys)).Msg("Snapshot persistence failed; in-memory state kept")
		return nil
	}
	clear(s.unsaved)
	return nil
}

func keyStrings(keys []domain.SnapshotKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// View runs fn against the current state under a shared lock.
func (s *MemoryStore) View(ctx context.Context, fn func(tx domain.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&memoryTx{data: &s.data, readOnly: true})
}

// Snapshot returns a deep copy of the whole dataset.
func (s *MemoryStore) Snapshot() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

type memoryTx struct {
	data     *domain.Dataset
	readOnly bool
	dirty    map[domain.SnapshotKey]bool
}

func (tx *memoryTx) write(key domain.SnapshotKey) error {
	if tx.readOnly {
		return ErrReadOnly
	}
	tx.dirty[key] = true
	return nil
}

func (tx *memoryTx) dirtyKeys() []domain.SnapshotKey {
	keys := make([]domain.SnapshotKey, 0, len(tx.dirty))
	for _, k := range domain.AllSnapshotKeys {
		if tx.dirty[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

func (tx *memoryTx) Products() domain.ProductRepository { return &catalogRepository{tx: tx} }
func (tx *memoryTx) Inventory() domain.InventoryRepository { return &inventoryRepository{tx: tx} }
func (tx *memoryTx) Orders() domain.OrderRepository { return &orderRepository{tx: tx} }
func (tx *memoryTx) Categories() domain.CategoryRepository { return &categoryRepository{tx: tx} }
func (tx *memoryTx) Settings() domain.SettingsRepository { return &settingsRepository{tx: tx} }
