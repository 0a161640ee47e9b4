package domain

import "regexp"

var prefixPattern = regexp.MustCompile(`^[A-Z]{2,4}$`)

// Category maps a display name to the code prefix used for new products.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// ValidPrefix reports whether prefix is 2-4 uppercase ASCII letters.
func ValidPrefix(prefix string) bool {
	return prefixPattern.MatchString(prefix)
}

// CategoryRepository defines the contract for category registry access
type CategoryRepository interface {
	FindAll() []Category
	FindByName(name string) (*Category, error)
	FindByPrefix(prefix string) (*Category, error)
	Create(category *Category) error
	Delete(id string) error
}
