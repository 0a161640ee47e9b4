package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/pkg/logger"
)

// ConnectInstagramCommand links an Instagram handle
type ConnectInstagramCommand struct {
	Handle string
}

// InstagramHandler handles the Instagram link commands
type InstagramHandler struct {
	uow domain.UnitOfWork
	now func() time.Time
}

// NewInstagramHandler creates a new Instagram handler
func NewInstagramHandler(uow domain.UnitOfWork) *InstagramHandler {
	return &InstagramHandler{uow: uow, now: time.Now}
}

// Connect executes the connect command
func (h *InstagramHandler) Connect(ctx context.Context, cmd ConnectInstagramCommand) (*domain.InstagramConfig, error) {
	handle := strings.TrimSpace(cmd.Handle)
	if handle == "" {
		return nil, domain.Invalid("handle", "is required")
	}

	at := h.now().UnixMilli()
	cfg := domain.InstagramConfig{Connected: true, Handle: &handle, ConnectedAt: &at}
	if err := h.uow.Do(ctx, func(tx domain.Tx) error {
		return tx.Settings().SetInstagram(cfg)
	}); err != nil {
		return nil, fmt.Errorf("failed to connect instagram: %w", err)
	}

	logger.Info(ctx).Str("handle", handle).Msg("Instagram connected")
	return &cfg, nil
}

// Disconnect executes the disconnect command
func (h *InstagramHandler) Disconnect(ctx context.Context) error {
	if err := h.uow.Do(ctx, func(tx domain.Tx) error {
		return tx.Settings().SetInstagram(domain.InstagramConfig{})
	}); err != nil {
		return fmt.Errorf("failed to disconnect instagram: %w", err)
	}

	logger.Info(ctx).Msg("Instagram disconnected")
	return nil
}
