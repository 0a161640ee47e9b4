package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FallbackPrefix is used for products whose category is not registered.
const FallbackPrefix = "PR"

// Product is a sellable catalog entry. ID and Code never change after creation.
type Product struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	BasePrice int64  `json:"basePrice"`
	Image     string `json:"image,omitempty"`
}

// ProductPatch is a field-level partial update; nil fields are left untouched.
type ProductPatch struct {
	Name      *string
	BasePrice *int64
	Image     *string
}

// Apply merges the patch into p and reports whether any of the fields mirrored by inventory changed.
func (patch ProductPatch) Apply(p *Product) (mirrorChanged bool) {
	if patch.Name != nil && *patch.Name != p.Name {
		p.Name = *patch.Name
		mirrorChanged = true
	}
	if patch.Image != nil && *patch.Image != p.Image {
		p.Image = *patch.Image
		mirrorChanged = true
	}
	if patch.BasePrice != nil {
		p.BasePrice = *patch.BasePrice
	}
	return mirrorChanged
}

// FormatProductCode renders prefix + "-" + the sequence padded to three digits.
func FormatProductCode(prefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// NextCodeSequence returns the sequence number for the next product code: one past the larger of
// the catalog size and the highest numeric suffix among existing codes. With no deletions this is
// exactly size+1; after deletions it never re-mints the suffix of a live product.
func NextCodeSequence(products []Product) int {
	highest := len(products)
	for _, p := range products {
		idx := strings.LastIndexByte(p.Code, '-')
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(p.Code[idx+1:])
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// ProductRepository defines the contract for catalog data access
type ProductRepository interface {
	FindAll() []Product
	FindByID(id string) (*Product, error)
	Create(product *Product) error
	Update(product *Product) error
	Delete(id string) error
}
