package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/logger"
)

// AddCategoryCommand represents the command to register a category
type AddCategoryCommand struct {
	Name   string
	Prefix string
}

// AddCategoryHandler handles add category command
type AddCategoryHandler struct {
	uow domain.UnitOfWork
}

// NewAddCategoryHandler creates a new add category handler
func NewAddCategoryHandler(uow domain.UnitOfWork) *AddCategoryHandler {
	return &AddCategoryHandler{uow: uow}
}

// Handle executes the add category command. Prefixes and names are unique.
func (h *AddCategoryHandler) Handle(ctx context.Context, cmd AddCategoryCommand) (*domain.Category, error) {
	name := strings.TrimSpace(cmd.Name)
	prefix := strings.ToUpper(strings.TrimSpace(cmd.Prefix))

	if name == "" {
		return nil, domain.Invalid("name", "is required")
	}
	if !domain.ValidPrefix(prefix) {
		return nil, domain.Invalid("prefix", "must be 2-4 letters A-Z")
	}

	category := domain.Category{ID: "cat-" + uuid.NewString(), Name: name, Prefix: prefix}
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		if _, err := tx.Categories().FindByPrefix(prefix); err == nil {
			return domain.Invalid("prefix", fmt.Sprintf("%q is already used", prefix))
		}
		if _, err := tx.Categories().FindByName(name); err == nil {
			return domain.Invalid("name", fmt.Sprintf("%q already exists", name))
		}
		return tx.Categories().Create(&category)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add category: %w", err)
	}

	logger.Info(ctx).
		Str("category_id", category.ID).
		Str("prefix", category.Prefix).
		Msg("Category added")
	return &category, nil
}

// DeleteCategoryCommand represents the command to delete a category
type DeleteCategoryCommand struct {
	ID string
}

// DeleteCategoryHandler handles delete category command
type DeleteCategoryHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(uow domain.UnitOfWork) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{uow: uow}
}

// Handle removes the category if present. Codes already minted with its prefix stay as they are.
func (h *DeleteCategoryHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) error {
	err := h.uow.Do(ctx, func(tx domain.Tx) error {
		return tx.Categories().Delete(cmd.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info(ctx).Str("category_id", cmd.ID).Msg("Category deleted")
	return nil
}
