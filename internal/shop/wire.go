//go:build wireinject
// +build wireinject

package shop

import (
	"github.com/google/wire"

	"github.com/tair/shop-console/internal/shop/delivery/http"
	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/media"
	"github.com/tair/shop-console/internal/shop/repository"
	"github.com/tair/shop-console/pkg/auth"
)

// InitializeApp wires every handler over one store
func InitializeApp(
	store *repository.MemoryStore,
	images media.ImageStore,
	publisher domain.EventPublisher,
	tokens *auth.TokenIssuer,
	limiter http.Limiter,
) (*App, error) {
	wire.Build(AppSet)
	return nil, nil
}
