// Package snapshot loads and saves the console stores as independent JSON blobs, one key per store.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/metrics"
	"github.com/tair/shop-console/pkg/auth"
	"github.com/tair/shop-console/pkg/logger"
)

// Gateway is the load/save boundary between the in-memory stores and a BlobStore.
type Gateway struct {
	blobs BlobStore
}

func NewGateway(blobs BlobStore) *Gateway {
	return &Gateway{blobs: blobs}
}

// Load reads every key. A missing or malformed key is seeded from the default dataset; Load never
// fails. Inventory is reconciled against the catalog so every product has exactly one record.
func (g *Gateway) Load(ctx context.Context) domain.Dataset {
	var ds domain.Dataset

	ds.Products = loadJSON(ctx, g, domain.KeyCatalog, domain.DefaultProducts)
	ds.Inventory = loadJSON(ctx, g, domain.KeyInventory, domain.DefaultInventory)
	ds.Orders = loadJSON(ctx, g, domain.KeyOrders, domain.DefaultOrders)
	ds.Categories = loadJSON(ctx, g, domain.KeyCategories, domain.DefaultCategories)
	ds.Settings.Instagram = loadJSON(ctx, g, domain.KeyInstagram, domain.DefaultInstagram)
	ds.Settings.AdminPasswordHash = g.loadPassword(ctx)

	reconcileInventory(ctx, &ds)
	return ds
}

// Persist overwrites the blob of each listed key with the current value from ds. Every key is
// attempted; the returned error joins the individual failures.
func (g *Gateway) Persist(ctx context.Context, ds *domain.Dataset, keys []domain.SnapshotKey) error {
	var errs []error
	for _, key := range keys {
		value, err := Encode(ds, key)
		if err == nil {
			err = g.blobs.Put(ctx, string(key), value)
		}
		if err != nil {
			metrics.SnapshotWrites.WithLabelValues(string(key), "error").Inc()
			logger.Warn(ctx).Err(err).Str("key", string(key)).Msg("Failed to write snapshot")
			errs = append(errs, fmt.Errorf("snapshot %s: %w", key, err))
			continue
		}
		metrics.SnapshotWrites.WithLabelValues(string(key), "ok").Inc()
		logger.Debug(ctx).Str("key", string(key)).Int("bytes", len(value)).Msg("Snapshot written")
	}
	return errors.Join(errs...)
}

// Encode serializes the store named by key.
func Encode(ds *domain.Dataset, key domain.SnapshotKey) ([]byte, error) {
	switch key {
	case domain.KeyCatalog:
		return json.Marshal(nonNil(ds.Products))
	case domain.KeyInventory:
		return json.Marshal(nonNil(ds.Inventory))
	case domain.KeyOrders:
		return json.Marshal(nonNil(ds.Orders))
	case domain.KeyCategories:
		return json.Marshal(nonNil(ds.Categories))
	case domain.KeyInstagram:
		return json.Marshal(ds.Settings.Instagram)
	case domain.KeyAdminPassword:
		return json.Marshal(ds.Settings.AdminPasswordHash)
	}
	return nil, fmt.Errorf("unknown snapshot key %q", key)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (g *Gateway) read(ctx context.Context, key domain.SnapshotKey) ([]byte, bool) {
	raw, err := g.blobs.Get(ctx, string(key))
	if err != nil {
		reason := "error"
		if errors.Is(err, ErrNotFound) {
			reason = "missing"
		} else {
			logger.Warn(ctx).Err(err).Str("key", string(key)).Msg("Failed to read snapshot")
		}
		metrics.SnapshotLoadFallbacks.WithLabelValues(string(key), reason).Inc()
		return nil, false
	}
	return raw, true
}

func loadJSON[T any](ctx context.Context, g *Gateway, key domain.SnapshotKey, fallback func() T) T {
	raw, ok := g.read(ctx, key)
	if !ok {
		return fallback()
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		metrics.SnapshotLoadFallbacks.WithLabelValues(string(key), "null").Inc()
		return fallback()
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.SnapshotLoadFallbacks.WithLabelValues(string(key), "malformed").Inc()
		logger.Warn(ctx).Err(err).Str("key", string(key)).Msg("Malformed snapshot, using defaults")
		return fallback()
	}
	return v
}

// loadPassword accepts three encodings: a JSON string holding a bcrypt hash, a JSON string holding a
// plain-text password, or a raw plain-text value. Plain text is hashed on load.
func (g *Gateway) loadPassword(ctx context.Context) string {
	plain := domain.DefaultAdminPassword
	if raw, ok := g.read(ctx, domain.KeyAdminPassword); ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(bytes.TrimSpace(raw))
		}
		if auth.IsHash(s) {
			return s
		}
		if s != "" {
			plain = s
		}
	}

	hashed, err := auth.HashPassword(plain)
	if err != nil {
		// bcrypt only fails for inputs over 72 bytes; fall back to the factory password.
		logger.Warn(ctx).Err(err).Msg("Stored admin password unusable, using default")
		hashed, _ = auth.HashPassword(domain.DefaultAdminPassword)
	}
	return hashed
}

// reconcileInventory keeps the product/inventory bijection when the two keys were loaded from
// different sources: orphan records are dropped, duplicates collapse to the first, and products
// without a record get one with zero stock.
func reconcileInventory(ctx context.Context, ds *domain.Dataset) {
	live := make(map[string]domain.Product, len(ds.Products))
	for _, p := range ds.Products {
		live[p.ID] = p
	}

	seen := make(map[string]bool, len(ds.Inventory))
	kept := make([]domain.InventoryRecord, 0, len(ds.Inventory))
	dropped := 0
	for _, rec := range ds.Inventory {
		if _, ok := live[rec.ProductID]; !ok || seen[rec.ProductID] {
			dropped++
			continue
		}
		seen[rec.ProductID] = true
		kept = append(kept, rec)
	}

	added := 0
	for _, p := range ds.Products {
		if seen[p.ID] {
			continue
		}
		image := p.Image
		if image == "" {
			image = domain.DefaultInventoryImage
		}
		kept = append(kept, domain.InventoryRecord{
			ID:          "inv-" + uuid.NewString(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Image:       image,
		})
		added++
	}
	ds.Inventory = kept

	if dropped > 0 || added > 0 {
		logger.Warn(ctx).
			Int("dropped", dropped).
			Int("added", added).
			Msg("Inventory reconciled against catalog")
	}
}
