package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCodeSequence(t *testing.T) {
	tests := []struct {
		name     string
		codes    []string
		expected int
	}{
		{"empty catalog", nil, 1},
		{"dense codes", []string{"DR-001", "BG-002", "TOP-003"}, 4},
		{"gap after deletion keeps highest", []string{"DR-001", "BG-005"}, 6},
		{"unparseable codes fall back to size", []string{"legacy", "x-y"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := make([]Product, 0, len(tt.codes))
			for i, c := range tt.codes {
				products = append(products, Product{ID: fmt.Sprint(i), Code: c})
			}
			assert.Equal(t, tt.expected, NextCodeSequence(products))
		})
	}
}

func TestFormatProductCode(t *testing.T) {
	assert.Equal(t, "DR-006", FormatProductCode("DR", 6))
	assert.Equal(t, "ACC-1234", FormatProductCode("ACC", 1234))
}

func TestInventoryDeduct(t *testing.T) {
	r := &InventoryRecord{Stock: 5}
	assert.False(t, r.Deduct(2))
	assert.Equal(t, 3, r.Stock)

	assert.True(t, r.Deduct(5))
	assert.Equal(t, 0, r.Stock)

	r.Stock = 4
	assert.False(t, r.Deduct(4))
	assert.Equal(t, 0, r.Stock)
	assert.False(t, r.InStock())
}

func TestOrderLifecycle(t *testing.T) {
	o := &Order{Status: StatusPending}

	require.Error(t, o.Deliver())

	require.NoError(t, o.Ship("T1", "2024-01-01"))
	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, "T1", o.TrackingNumber)

	require.NoError(t, o.Deliver())
	assert.Equal(t, StatusDelivered, o.Status)

	err := o.Ship("T2", "2024-01-02")
	assert.True(t, IsValidation(err))
}

func TestValidPrefix(t *testing.T) {
	for _, ok := range []string{"DR", "TOP", "ACCS"} {
		assert.True(t, ValidPrefix(ok), ok)
	}
	for _, bad := range []string{"", "D", "dr", "ABCDE", "D1", "가나"} {
		assert.False(t, ValidPrefix(bad), bad)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	wrapped := fmt.Errorf("add product: %w", Invalid("name", "is required"))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, "add product: validation failed: name is required", wrapped.Error())

	nf := fmt.Errorf("ship: %w", NotFound("order", "42"))
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsValidation(nf))
}

func TestSeedBijection(t *testing.T) {
	products := DefaultProducts()
	inventory := DefaultInventory()
	require.Len(t, inventory, len(products))

	byProduct := map[string]int{}
	for _, r := range inventory {
		byProduct[r.ProductID]++
	}
	for _, p := range products {
		assert.Equal(t, 1, byProduct[p.ID], p.ID)
	}
}

func TestDatasetCloneIsIndependent(t *testing.T) {
	handle := "shop"
	d := Dataset{
		Products: DefaultProducts(),
		Settings: Settings{Instagram: InstagramConfig{Connected: true, Handle: &handle}},
	}
	c := d.Clone()
	c.Products[0].Name = "changed"
	*c.Settings.Instagram.Handle = "other"

	assert.Equal(t, "린넨 원피스 (Beige)", d.Products[0].Name)
	assert.Equal(t, "shop", *d.Settings.Instagram.Handle)
}
