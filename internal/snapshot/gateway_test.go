package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/auth"
)

type failingBlobStore struct{ *MemoryBlobStore }

func (failingBlobStore) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestLoadEmptyStoreSeedsDefaults(t *testing.T) {
	ds := NewGateway(NewMemoryBlobStore()).Load(context.Background())

	assert.Equal(t, domain.DefaultProducts(), ds.Products)
	assert.Equal(t, domain.DefaultInventory(), ds.Inventory)
	assert.Equal(t, domain.DefaultOrders(), ds.Orders)
	assert.Equal(t, domain.DefaultCategories(), ds.Categories)
	assert.False(t, ds.Settings.Instagram.Connected)
	assert.True(t, auth.CheckPassword(ds.Settings.AdminPasswordHash, domain.DefaultAdminPassword))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	gw := NewGateway(blobs)

	handle := "wildflower_story"
	at := int64(1738800000000)
	hashed, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	want := domain.Dataset{
		Products:  []domain.Product{{ID: "p1", Code: "DR-001", Name: "Linen Dress", Category: "Dress", BasePrice: 89000, Image: "👗"}},
		Inventory: []domain.InventoryRecord{{ID: "i1", ProductID: "p1", ProductName: "Linen Dress", Stock: 2, RestockDate: "2025-02-15", Image: "👗"}},
		Orders: []domain.Order{{
			ID: "o1", CustomerName: "Kim", ContactInfo: "@kim", Source: domain.SourceWeb, ProductName: "Linen Dress",
			Quantity: 2, Status: domain.StatusShipped, TrackingNumber: "T1", ShippingDate: "2024-01-01",
			CreatedAt: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		}},
		Categories: []domain.Category{{ID: "c1", Name: "Dress", Prefix: "DR"}},
		Settings: domain.Settings{
			AdminPasswordHash: hashed,
			Instagram:         domain.InstagramConfig{Connected: true, Handle: &handle, ConnectedAt: &at},
		},
	}

	require.NoError(t, gw.Persist(ctx, &want, domain.AllSnapshotKeys))

	loaded := gw.Load(ctx)
	assert.Equal(t, want, loaded)
}

func TestMalformedKeyFallsBackIndependently(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	require.NoError(t, blobs.Put(ctx, string(domain.KeyOrders), []byte("{not json")))
	require.NoError(t, blobs.Put(ctx, string(domain.KeyCategories), []byte(`[{"id":"c1","name":"Shoes","prefix":"SH"}]`)))
	require.NoError(t, blobs.Put(ctx, string(domain.KeyInstagram), []byte("null")))

	ds := NewGateway(blobs).Load(ctx)

	assert.Equal(t, domain.DefaultOrders(), ds.Orders)
	assert.Equal(t, []domain.Category{{ID: "c1", Name: "Shoes", Prefix: "SH"}}, ds.Categories)
	assert.Equal(t, domain.DefaultInstagram(), ds.Settings.Instagram)
}

func TestLegacyPlainTextPassword(t *testing.T) {
	ctx := context.Background()

	for name, raw := range map[string]string{
		"raw value":   "9876",
		"json string": `"9876"`,
	} {
		t.Run(name, func(t *testing.T) {
			blobs := NewMemoryBlobStore()
			require.NoError(t, blobs.Put(ctx, string(domain.KeyAdminPassword), []byte(raw)))

			ds := NewGateway(blobs).Load(ctx)
			assert.True(t, auth.IsHash(ds.Settings.AdminPasswordHash))
			assert.True(t, auth.CheckPassword(ds.Settings.AdminPasswordHash, "9876"))
		})
	}
}

func TestLoadReconcilesInventory(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	require.NoError(t, blobs.Put(ctx, string(domain.KeyCatalog), []byte(`[{"id":"p1","code":"DR-001","name":"A","category":"Dress","basePrice":1},{"id":"p7","code":"DR-002","name":"B","category":"Dress","basePrice":2}]`)))
	require.NoError(t, blobs.Put(ctx, string(domain.KeyInventory), []byte(`[{"id":"1","productId":"p1","productName":"A","stock":4,"image":"x"},{"id":"9","productId":"gone","productName":"Z","stock":1,"image":"x"}]`)))

	ds := NewGateway(blobs).Load(ctx)

	require.Len(t, ds.Inventory, 2)
	assert.Equal(t, "p1", ds.Inventory[0].ProductID)
	assert.Equal(t, 4, ds.Inventory[0].Stock)
	assert.Equal(t, "p7", ds.Inventory[1].ProductID)
	assert.Equal(t, "B", ds.Inventory[1].ProductName)
	assert.Equal(t, 0, ds.Inventory[1].Stock)
}

func TestPersistWritesWholeValue(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	gw := NewGateway(blobs)

	ds := domain.Dataset{Categories: []domain.Category{{ID: "c1", Name: "Dress", Prefix: "DR"}}}
	require.NoError(t, gw.Persist(ctx, &ds, []domain.SnapshotKey{domain.KeyCategories, domain.KeyCatalog}))

	raw, err := blobs.Get(ctx, string(domain.KeyCategories))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1","name":"Dress","prefix":"DR"}]`, string(raw))

	raw, err = blobs.Get(ctx, string(domain.KeyCatalog))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	_, err = blobs.Get(ctx, string(domain.KeyOrders))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistReportsFailures(t *testing.T) {
	gw := NewGateway(failingBlobStore{NewMemoryBlobStore()})
	ds := domain.Dataset{}

	err := gw.Persist(context.Background(), &ds, []domain.SnapshotKey{domain.KeyOrders, domain.KeyCatalog})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot orders")
	assert.Contains(t, err.Error(), "snapshot catalog")
}

func TestTracingBlobStorePassesThrough(t *testing.T) {
	ctx := context.Background()
	store := NewTracingBlobStore(NewMemoryBlobStore(), "memory")

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
