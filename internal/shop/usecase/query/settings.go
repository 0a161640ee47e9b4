package query

import (
	"context"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/auth"
)

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	uow domain.UnitOfWork
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(uow domain.UnitOfWork) *ListCategoriesHandler {
	return &ListCategoriesHandler{uow: uow}
}

// Handle returns every category
func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := h.uow.View(ctx, func(tx domain.Tx) error {
		categories = tx.Categories().FindAll()
		return nil
	})
	return categories, err
}

// SettingsView is the public part of the settings. The password hash never leaves the core.
type SettingsView struct {
	IsPasswordSet bool                   `json:"isPasswordSet"`
	Instagram     domain.InstagramConfig `json:"instagram"`
}

// GetSettingsHandler handles get settings query
type GetSettingsHandler struct {
	uow domain.UnitOfWork
}

// NewGetSettingsHandler creates a new get settings handler
func NewGetSettingsHandler(uow domain.UnitOfWork) *GetSettingsHandler {
	return &GetSettingsHandler{uow: uow}
}

// Handle executes the get settings query
func (h *GetSettingsHandler) Handle(ctx context.Context) (*SettingsView, error) {
	var s domain.Settings
	if err := h.uow.View(ctx, func(tx domain.Tx) error {
		s = tx.Settings().Get()
		return nil
	}); err != nil {
		return nil, err
	}

	return &SettingsView{
		IsPasswordSet: !auth.CheckPassword(s.AdminPasswordHash, domain.DefaultAdminPassword),
		Instagram:     s.Instagram,
	}, nil
}
