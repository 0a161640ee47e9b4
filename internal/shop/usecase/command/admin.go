package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/auth"
	"github.com/tair/shop-console/pkg/logger"
)

// SetupPasswordCommand sets the first admin password while the factory default is still in use.
type SetupPasswordCommand struct {
	Password string
	Confirm  string
}

// ChangePasswordCommand replaces the admin password.
type ChangePasswordCommand struct {
	CurrentPassword string
	NewPassword     string
}

// LoginCommand exchanges the admin password for a session token.
type LoginCommand struct {
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminHandler handles the admin password commands
type AdminHandler struct {
	uow    domain.UnitOfWork
	tokens *auth.TokenIssuer
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(uow domain.UnitOfWork, tokens *auth.TokenIssuer) *AdminHandler {
	return &AdminHandler{uow: uow, tokens: tokens}
}

// Setup executes the initial password setup command
func (h *AdminHandler) Setup(ctx context.Context, cmd SetupPasswordCommand) error {
	if len(cmd.Password) < domain.MinPasswordLength {
		return domain.Invalid("password", fmt.Sprintf("must be at least %d characters", domain.MinPasswordLength))
	}
	if cmd.Password != cmd.Confirm {
		return domain.Invalid("confirm", "does not match password")
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return domain.Invalid("password", "cannot be hashed")
	}

	err = h.uow.Do(ctx, func(tx domain.Tx) error {
		if !auth.CheckPassword(tx.Settings().Get().AdminPasswordHash, domain.DefaultAdminPassword) {
			return domain.Invalid("password", "is already set")
		}
		return tx.Settings().SetAdminPasswordHash(hashed)
	})
	if err != nil {
		return fmt.Errorf("failed to set up admin password: %w", err)
	}

	logger.Info(ctx).Msg("Admin password set up")
	return nil
}

// Change executes the change password command
func (h *AdminHandler) Change(ctx context.Context, cmd ChangePasswordCommand) error {
	if len(cmd.NewPassword) < domain.MinPasswordLength {
		return domain.Invalid("newPassword", fmt.Sprintf("must be at least %d characters", domain.MinPasswordLength))
	}

	hashed, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return domain.Invalid("newPassword", "cannot be hashed")
	}

	err = h.uow.Do(ctx, func(tx domain.Tx) error {
		if !auth.CheckPassword(tx.Settings().Get().AdminPasswordHash, cmd.CurrentPassword) {
			return domain.ErrInvalidCredentials
		}
		return tx.Settings().SetAdminPasswordHash(hashed)
	})
	if err != nil {
		return fmt.Errorf("failed to change admin password: %w", err)
	}

	logger.Info(ctx).Msg("Admin password changed")
	return nil
}

// Login executes the login command
func (h *AdminHandler) Login(ctx context.Context, cmd LoginCommand) (*LoginResponse, error) {
	if cmd.Password == "" {
		return nil, domain.Invalid("password", "is required")
	}

	var hashed string
	if err := h.uow.View(ctx, func(tx domain.Tx) error {
		hashed = tx.Settings().Get().AdminPasswordHash
		return nil
	}); err != nil {
		return nil, err
	}

	if !auth.CheckPassword(hashed, cmd.Password) {
		logger.Warn(ctx).Msg("Admin login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := h.tokens.GenerateToken()
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
