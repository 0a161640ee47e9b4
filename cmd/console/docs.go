package main

// @title Shop Console API
// @version 1.0
// @description Operations console for a small fashion shop with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/shop-console
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tair/shop-console/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Inventory
// @tag.description Stock ledger endpoints

// @tag.name Orders
// @tag.description Order ledger endpoints

// @tag.name Categories
// @tag.description Category registry endpoints

// @tag.name Auth
// @tag.description Admin session endpoints

// @tag.name Settings
// @tag.description Admin password and Instagram connection endpoints

// @tag.name Inbox
// @tag.description Message triage endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
