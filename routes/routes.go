package routes

import (
	"demandcast/handlers"
	"demandcast/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/admin-login", handlers.HandleAdminLogin)
	auth.Post("/customer-login", handlers.HandleCustomerLogin)

	// --- Catalog Routes ---
	api.Get("/products", handlers.HandleListProducts)
	api.Get("/products/:productId", handlers.HandleGetProductByID)

	// --- Forecast Routes ---
	forecasts := api.Group("/forecasts")
	forecasts.Get("/product/:productId", handlers.HandleGetProductForecast)
	forecasts.Get("/summary", handlers.HandleGetForecastSummary)
	forecasts.Post("/product/:productId/insight", middleware.JWTMiddleware, handlers.HandleForecastInsight)

	// --- Inventory Routes ---
	inventory := api.Group("/inventory")
	inventory.Get("/stock-levels", handlers.HandleGetStockLevels)
	inventory.Get("/expiring-soon", handlers.HandleGetExpiringStock)

	// --- Procurement Routes ---
	procurement := api.Group("/procurement", middleware.JWTMiddleware, middleware.AdminRequired)
	procurement.Get("/recommendations", handlers.HandleGetRecommendations)
	procurement.Get("/stats", handlers.HandleGetProcurementStats)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.JWTMiddleware, middleware.AdminRequired)
	admin.Get("/dashboard-stats", handlers.HandleGetDashboardStats)
}
