package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/media"
	"github.com/tair/shop-console/internal/shop/repository"
	"github.com/tair/shop-console/pkg/auth"
)

type capturingPublisher struct {
	events []domain.OrderPlacedEvent
	err    error
}

func (p *capturingPublisher) PublishOrderPlaced(_ context.Context, e domain.OrderPlacedEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func newStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	hashed, err := auth.HashPassword(domain.DefaultAdminPassword)
	require.NoError(t, err)
	return repository.NewMemoryStore(domain.Dataset{
		Products:   domain.DefaultProducts(),
		Inventory:  domain.DefaultInventory(),
		Orders:     domain.DefaultOrders(),
		Categories: domain.DefaultCategories(),
		Settings:   domain.Settings{AdminPasswordHash: hashed},
	}, nil)
}

func stockOf(t *testing.T, store *repository.MemoryStore, productID string) int {
	t.Helper()
	for _, rec := range store.Snapshot().Inventory {
		if rec.ProductID == productID {
			return rec.Stock
		}
	}
	t.Fatalf("no inventory record for %s", productID)
	return 0
}

func assertBijection(t *testing.T, ds domain.Dataset) {
	t.Helper()
	require.Len(t, ds.Inventory, len(ds.Products))
	seen := map[string]bool{}
	for _, rec := range ds.Inventory {
		assert.False(t, seen[rec.ProductID], "duplicate record for %s", rec.ProductID)
		seen[rec.ProductID] = true
	}
	for _, p := range ds.Products {
		assert.True(t, seen[p.ID], "product %s has no record", p.ID)
	}
}

func TestAddProductCreatesZeroStockRecord(t *testing.T) {
	store := newStore(t)
	h := NewAddProductHandler(store, media.PassthroughImageStore{})

	p, err := h.Handle(context.Background(), AddProductCommand{Name: " 니트 가디건 ", Category: "Outer", BasePrice: 54000})
	require.NoError(t, err)

	assert.Equal(t, "니트 가디건", p.Name)
	assert.Equal(t, "OT-006", p.Code)
	assert.Equal(t, 0, stockOf(t, store, p.ID))

	ds := store.Snapshot()
	assertBijection(t, ds)
	last := ds.Inventory[len(ds.Inventory)-1]
	assert.Equal(t, domain.DefaultInventoryImage, last.Image)
	assert.Equal(t, p.Name, last.ProductName)
}

func TestAddProductUnknownCategoryUsesFallbackPrefix(t *testing.T) {
	store := newStore(t)
	h := NewAddProductHandler(store, media.PassthroughImageStore{})

	p, err := h.Handle(context.Background(), AddProductCommand{Name: "Hat", Category: "Headwear", BasePrice: 1})
	require.NoError(t, err)
	assert.Equal(t, "PR-006", p.Code)
}

func TestAddProductCodesStayUniqueAfterDeletion(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	add := NewAddProductHandler(store, media.PassthroughImageStore{})
	del := NewDeleteProductHandler(store)

	require.NoError(t, del.Handle(ctx, DeleteProductCommand{ID: "p2"}))
	p, err := add.Handle(ctx, AddProductCommand{Name: "Tote", Category: "Accessory", BasePrice: 10})
	require.NoError(t, err)

	codes := map[string]bool{}
	for _, existing := range store.Snapshot().Products {
		assert.False(t, codes[existing.Code], "duplicate code %s", existing.Code)
		codes[existing.Code] = true
	}
	assert.Equal(t, "ACC-006", p.Code)
}

func TestBijectionAcrossInterleavedAddsAndDeletes(t *testing.T) {
	store := newStore(t)
	add := NewAddProductHandler(store, media.PassthroughImageStore{})
	del := NewDeleteProductHandler(store)
	ctx := context.Background()

	added := map[string]string{}
	steps := []struct {
		op       string
		ref      string
		category string
	}{
		{"add", "a", "Outer"},
		{"delete", "p2", ""},
		{"add", "b", "Pants"},
		{"add", "c", "Unknown"},
		{"delete", "a", ""},
		{"delete", "p5", ""},
		{"add", "d", "Accessory"},
		{"delete", "c", ""},
		{"add", "e", "Dress"},
	}

	for i, step := range steps {
		switch step.op {
		case "add":
			p, err := add.Handle(ctx, AddProductCommand{Name: "상품 " + step.ref, Category: step.category, BasePrice: 10000})
			require.NoError(t, err, "step %d", i)
			added[step.ref] = p.ID
		case "delete":
			id := step.ref
			if generated, ok := added[step.ref]; ok {
				id = generated
			}
			require.NoError(t, del.Handle(ctx, DeleteProductCommand{ID: id}), "step %d", i)
		}

		ds := store.Snapshot()
		assertBijection(t, ds)

		codes := map[string]bool{}
		for _, p := range ds.Products {
			assert.False(t, codes[p.Code], "step %d: duplicate live code %s", i, p.Code)
			codes[p.Code] = true
		}
	}
	assert.Len(t, store.Snapshot().Products, 6)
}

func TestAddProductValidation(t *testing.T) {
	store := newStore(t)
	h := NewAddProductHandler(store, media.PassthroughImageStore{})
	ctx := context.Background()

	cases := []AddProductCommand{
		{Name: "", Category: "Dress", BasePrice: 1},
		{Name: "A", Category: " ", BasePrice: 1},
		{Name: "A", Category: "Dress", BasePrice: -1},
	}
	for _, cmd := range cases {
		_, err := h.Handle(ctx, cmd)
		assert.True(t, domain.IsValidation(err), "%+v", cmd)
	}
	assert.Len(t, store.Snapshot().Products, 5)
}

func TestUpdateProductMirrorsNameAndImage(t *testing.T) {
	store := newStore(t)
	h := NewUpdateProductHandler(store, media.PassthroughImageStore{})

	name := "린넨 원피스 (Ivory)"
	image := "https://img.example.com/p1.png"
	_, err := h.Handle(context.Background(), UpdateProductCommand{ID: "p1", Name: &name, Image: &image})
	require.NoError(t, err)

	rec := store.Snapshot().Inventory[0]
	assert.Equal(t, name, rec.ProductName)
	assert.Equal(t, image, rec.Image)
	assert.Equal(t, 5, rec.Stock)
}

func TestUpdateProductClearedImageFallsBackToDefault(t *testing.T) {
	store := newStore(t)
	h := NewUpdateProductHandler(store, media.PassthroughImageStore{})

	hosted := "https://img.example.com/p1.png"
	_, err := h.Handle(context.Background(), UpdateProductCommand{ID: "p1", Image: &hosted})
	require.NoError(t, err)

	empty := ""
	p, err := h.Handle(context.Background(), UpdateProductCommand{ID: "p1", Image: &empty})
	require.NoError(t, err)
	assert.Empty(t, p.Image)

	rec := store.Snapshot().Inventory[0]
	assert.Equal(t, "p1", rec.ProductID)
	assert.Equal(t, domain.DefaultInventoryImage, rec.Image)
}

func TestUpdateProductRenameKeepsRecordImage(t *testing.T) {
	store := newStore(t)
	h := NewUpdateProductHandler(store, media.PassthroughImageStore{})

	name := "코튼 롱 스커트 (Navy)"
	_, err := h.Handle(context.Background(), UpdateProductCommand{ID: "p4", Name: &name})
	require.NoError(t, err)

	rec := store.Snapshot().Inventory[3]
	assert.Equal(t, name, rec.ProductName)
	assert.Equal(t, domain.DefaultInventoryImage, rec.Image)
}

func TestUpdateProductPriceOnlyLeavesRecord(t *testing.T) {
	store := newStore(t)
	h := NewUpdateProductHandler(store, media.PassthroughImageStore{})
	price := int64(99000)

	p, err := h.Handle(context.Background(), UpdateProductCommand{ID: "p1", BasePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, price, p.BasePrice)
	assert.Equal(t, "DR-001", p.Code)
	assert.Equal(t, domain.DefaultInventory()[0], store.Snapshot().Inventory[0])
}

func TestUpdateProductNotFound(t *testing.T) {
	h := NewUpdateProductHandler(newStore(t), media.PassthroughImageStore{})
	name := "x"
	_, err := h.Handle(context.Background(), UpdateProductCommand{ID: "missing", Name: &name})
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteProductRemovesRecordKeepsOrders(t *testing.T) {
	store := newStore(t)
	h := NewDeleteProductHandler(store)

	require.NoError(t, h.Handle(context.Background(), DeleteProductCommand{ID: "p1"}))

	ds := store.Snapshot()
	assertBijection(t, ds)
	assert.Len(t, ds.Orders, 2, "orders keep their product name snapshot")

	err := h.Handle(context.Background(), DeleteProductCommand{ID: "p1"})
	assert.True(t, domain.IsNotFound(err))
}

func TestSetStock(t *testing.T) {
	store := newStore(t)
	h := NewSetStockHandler(store)
	ctx := context.Background()

	rec, err := h.Handle(ctx, SetStockCommand{ProductID: "p2", Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, rec.Stock)
	assert.Equal(t, "2025-02-15", rec.RestockDate)

	cleared := ""
	rec, err = h.Handle(ctx, SetStockCommand{ProductID: "p2", Quantity: 7, RestockDate: &cleared})
	require.NoError(t, err)
	assert.Empty(t, rec.RestockDate)

	_, err = h.Handle(ctx, SetStockCommand{ProductID: "p2", Quantity: -1})
	assert.True(t, domain.IsValidation(err))

	_, err = h.Handle(ctx, SetStockCommand{ProductID: "nope", Quantity: 1})
	assert.True(t, domain.IsNotFound(err))
}

func TestPlaceOrderDeductsStock(t *testing.T) {
	store := newStore(t)
	pub := &capturingPublisher{}
	h := NewPlaceOrderHandler(store, pub)
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	order, err := h.Handle(context.Background(), PlaceOrderCommand{
		CustomerName: "박지민", ContactInfo: "@jimin", ProductName: "와일드플라워 블라우스", Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.SourceManual, order.Source)
	assert.Equal(t, fixed, order.CreatedAt)
	assert.Equal(t, 10, stockOf(t, store, "p3"))
	assert.Equal(t, order.ID, store.Snapshot().Orders[0].ID)

	require.Len(t, pub.events, 1)
	require.NotNil(t, pub.events[0].StockAfter)
	assert.Equal(t, 10, *pub.events[0].StockAfter)
}

func TestPlaceOrderClampsAtZero(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	_, err := NewSetStockHandler(store).Handle(ctx, SetStockCommand{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	_, err = NewPlaceOrderHandler(store, domain.NoopPublisher{}).Handle(ctx, PlaceOrderCommand{
		CustomerName: "Kim", ProductName: "린넨 원피스 (Beige)", Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, store, "p1"))
}

func TestPlaceOrderByProductID(t *testing.T) {
	store := newStore(t)
	order, err := NewPlaceOrderHandler(store, domain.NoopPublisher{}).Handle(context.Background(), PlaceOrderCommand{
		CustomerName: "Kim", ProductID: "p3", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "와일드플라워 블라우스", order.ProductName)
	assert.Equal(t, 11, stockOf(t, store, "p3"))
}

func TestPlaceOrderUntrackedProductLeavesInventory(t *testing.T) {
	store := newStore(t)
	before := store.Snapshot().Inventory
	pub := &capturingPublisher{}

	_, err := NewPlaceOrderHandler(store, pub).Handle(context.Background(), PlaceOrderCommand{
		CustomerName: "Kim", ProductName: "Gift card", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, before, store.Snapshot().Inventory)
	require.Len(t, pub.events, 1)
	assert.Nil(t, pub.events[0].StockAfter)
}

func TestPlaceOrderPublishFailureIsIgnored(t *testing.T) {
	store := newStore(t)
	pub := &capturingPublisher{err: errors.New("broker down")}

	_, err := NewPlaceOrderHandler(store, pub).Handle(context.Background(), PlaceOrderCommand{
		CustomerName: "Kim", ProductName: "실크 스카프", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Len(t, store.Snapshot().Orders, 3)
}

func TestPlaceOrderValidation(t *testing.T) {
	store := newStore(t)
	h := NewPlaceOrderHandler(store, domain.NoopPublisher{})
	ctx := context.Background()

	cases := []PlaceOrderCommand{
		{CustomerName: "", ProductName: "실크 스카프", Quantity: 1},
		{CustomerName: "Kim", Quantity: 1},
		{CustomerName: "Kim", ProductName: "실크 스카프", Quantity: 0},
		{CustomerName: "Kim", ProductName: "실크 스카프", Quantity: 1, Source: "fax"},
	}
	for _, cmd := range cases {
		_, err := h.Handle(ctx, cmd)
		assert.True(t, domain.IsValidation(err), "%+v", cmd)
	}
	assert.Len(t, store.Snapshot().Orders, 2)
}

func TestDeleteOrderDoesNotRestoreStock(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	order, err := NewPlaceOrderHandler(store, domain.NoopPublisher{}).Handle(ctx, PlaceOrderCommand{
		CustomerName: "Kim", ProductName: "와일드플라워 블라우스", Quantity: 4,
	})
	require.NoError(t, err)
	require.Equal(t, 8, stockOf(t, store, "p3"))

	require.NoError(t, NewDeleteOrderHandler(store).Handle(ctx, DeleteOrderCommand{OrderID: order.ID}))
	assert.Equal(t, 8, stockOf(t, store, "p3"))
	assert.Len(t, store.Snapshot().Orders, 2)

	err = NewDeleteOrderHandler(store).Handle(ctx, DeleteOrderCommand{OrderID: order.ID})
	assert.True(t, domain.IsNotFound(err))
}

func TestShipAndDeliverLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	ship := NewMarkShippedHandler(store)
	deliver := NewMarkDeliveredHandler(store)

	_, err := deliver.Handle(ctx, MarkDeliveredCommand{OrderID: "102"})
	assert.True(t, domain.IsValidation(err), "pending orders cannot be delivered")

	_, err = ship.Handle(ctx, MarkShippedCommand{OrderID: "102", TrackingNumber: "", ShippingDate: "2025-02-10"})
	assert.True(t, domain.IsValidation(err))

	order, err := ship.Handle(ctx, MarkShippedCommand{OrderID: "102", TrackingNumber: "CJ-9", ShippingDate: "2025-02-10"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, order.Status)
	assert.Equal(t, "CJ-9", order.TrackingNumber)

	order, err = deliver.Handle(ctx, MarkDeliveredCommand{OrderID: "102"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, order.Status)

	_, err = ship.Handle(ctx, MarkShippedCommand{OrderID: "102", TrackingNumber: "CJ-10", ShippingDate: "2025-02-11"})
	assert.True(t, domain.IsValidation(err))

	_, err = ship.Handle(ctx, MarkShippedCommand{OrderID: "nope", TrackingNumber: "CJ-1", ShippingDate: "2025-02-11"})
	assert.True(t, domain.IsNotFound(err))
}

func TestSimulateOrder(t *testing.T) {
	store := newStore(t)
	h := NewSimulateOrderHandler(store, NewPlaceOrderHandler(store, domain.NoopPublisher{}))
	h.intn = func(int) int { return 2 }

	order, err := h.Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceWeb, order.Source)
	assert.Equal(t, 1, order.Quantity)
	assert.Equal(t, "와일드플라워 블라우스", order.ProductName)
	assert.Equal(t, SyntheticCustomers[2].Name, order.CustomerName)
	assert.Equal(t, 11, stockOf(t, store, "p3"))
}

func TestSimulateOrderEmptyCatalog(t *testing.T) {
	store := repository.NewMemoryStore(domain.Dataset{}, nil)
	h := NewSimulateOrderHandler(store, NewPlaceOrderHandler(store, domain.NoopPublisher{}))

	_, err := h.Handle(context.Background())
	assert.True(t, domain.IsValidation(err))
}

func TestCategories(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	add := NewAddCategoryHandler(store)

	cat, err := add.Handle(ctx, AddCategoryCommand{Name: "Knit", Prefix: "kn"})
	require.NoError(t, err)
	assert.Equal(t, "KN", cat.Prefix)

	for _, cmd := range []AddCategoryCommand{
		{Name: "Knit2", Prefix: "KN"},
		{Name: "Knit", Prefix: "KNT"},
		{Name: "Bad", Prefix: "K"},
		{Name: "Bad", Prefix: "KNITS"},
		{Name: "Bad", Prefix: "K1"},
		{Name: "", Prefix: "ZZ"},
	} {
		_, err := add.Handle(ctx, cmd)
		assert.True(t, domain.IsValidation(err), "%+v", cmd)
	}
	assert.Len(t, store.Snapshot().Categories, 8)

	del := NewDeleteCategoryHandler(store)
	require.NoError(t, del.Handle(ctx, DeleteCategoryCommand{ID: "cat1"}))
	require.NoError(t, del.Handle(ctx, DeleteCategoryCommand{ID: "cat1"}))
	assert.Len(t, store.Snapshot().Categories, 7)

	assert.Equal(t, "DR-001", store.Snapshot().Products[0].Code, "existing codes survive category removal")
}

func TestAdminPasswordSetupAndChange(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	h := NewAdminHandler(store, auth.NewTokenIssuer("secret", time.Minute))

	err := h.Setup(ctx, SetupPasswordCommand{Password: "abc", Confirm: "abc"})
	assert.True(t, domain.IsValidation(err), "too short")

	err = h.Setup(ctx, SetupPasswordCommand{Password: "abcd", Confirm: "abce"})
	assert.True(t, domain.IsValidation(err), "mismatch")

	require.NoError(t, h.Setup(ctx, SetupPasswordCommand{Password: "s3cret", Confirm: "s3cret"}))

	err = h.Setup(ctx, SetupPasswordCommand{Password: "other1", Confirm: "other1"})
	assert.True(t, domain.IsValidation(err), "setup only while unset")

	err = h.Change(ctx, ChangePasswordCommand{CurrentPassword: "wrong", NewPassword: "newpass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, h.Change(ctx, ChangePasswordCommand{CurrentPassword: "s3cret", NewPassword: "newpass"}))

	hashed := store.Snapshot().Settings.AdminPasswordHash
	assert.True(t, auth.IsHash(hashed))
	assert.True(t, auth.CheckPassword(hashed, "newpass"))
}

func TestAdminLogin(t *testing.T) {
	store := newStore(t)
	issuer := auth.NewTokenIssuer("secret", time.Minute)
	h := NewAdminHandler(store, issuer)
	ctx := context.Background()

	_, err := h.Login(ctx, LoginCommand{Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	resp, err := h.Login(ctx, LoginCommand{Password: domain.DefaultAdminPassword})
	require.NoError(t, err)
	claims, err := issuer.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestInstagramConnectDisconnect(t *testing.T) {
	store := newStore(t)
	h := NewInstagramHandler(store)
	h.now = func() time.Time { return time.UnixMilli(1738800000000) }
	ctx := context.Background()

	_, err := h.Connect(ctx, ConnectInstagramCommand{Handle: "  "})
	assert.True(t, domain.IsValidation(err))

	cfg, err := h.Connect(ctx, ConnectInstagramCommand{Handle: "@tair_closet"})
	require.NoError(t, err)
	assert.True(t, cfg.Connected)

	stored := store.Snapshot().Settings.Instagram
	require.NotNil(t, stored.Handle)
	assert.Equal(t, "@tair_closet", *stored.Handle)
	require.NotNil(t, stored.ConnectedAt)
	assert.Equal(t, int64(1738800000000), *stored.ConnectedAt)

	require.NoError(t, h.Disconnect(ctx))
	assert.Equal(t, domain.InstagramConfig{}, store.Snapshot().Settings.Instagram)
}
