package shop

import (
	"github.com/google/wire"

	"github.com/tair/shop-console/internal/inbox"
	"github.com/tair/shop-console/internal/shop/delivery/http"
	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/repository"
	"github.com/tair/shop-console/internal/shop/usecase/command"
	"github.com/tair/shop-console/internal/shop/usecase/query"
)

// App is the wired console: the HTTP handler and the inbox feed the Kafka consumer writes to.
type App struct {
	Handler *http.ShopHandler
	Inbox   *inbox.Feed
}

// Wire sets
var CommandSet = wire.NewSet(
	command.NewAddProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	command.NewSetStockHandler,
	command.NewPlaceOrderHandler,
	command.NewSimulateOrderHandler,
	command.NewMarkShippedHandler,
	command.NewMarkDeliveredHandler,
	command.NewDeleteOrderHandler,
	command.NewAddCategoryHandler,
	command.NewDeleteCategoryHandler,
	command.NewAdminHandler,
	command.NewInstagramHandler,
	wire.Struct(new(http.Commands), "*"),
)

var QuerySet = wire.NewSet(
	query.NewListProductsHandler,
	query.NewGetProductHandler,
	query.NewListInventoryHandler,
	query.NewGetStatsHandler,
	query.NewListOrdersHandler,
	query.NewListCategoriesHandler,
	query.NewGetSettingsHandler,
	query.NewClassifyMessageHandler,
	wire.Struct(new(http.Queries), "*"),
)

var AppSet = wire.NewSet(
	wire.Bind(new(domain.UnitOfWork), new(*repository.MemoryStore)),
	wire.Bind(new(inbox.Classifier), new(*query.ClassifyMessageHandler)),
	CommandSet,
	QuerySet,
	inbox.NewFeed,
	http.NewShopHandler,
	wire.Struct(new(App), "*"),
)
