package routes

import (
	"github.com/gofiber/fiber/v2"

	"posdz-backend/controllers"
	"posdz-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoint
	api.Post("/login", controllers.Login)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard: double-submitted checkouts replay the stored response
	protected.Use(middlewares.Idempotency())

	// Account
	protected.Put("/password", controllers.ChangePassword)
	protected.Post("/users", middlewares.RequireRole("admin"), controllers.CreateUser)

	// Products
	protected.Post("/product", controllers.CreateProduct)
	protected.Get("/products", controllers.GetProducts)
	protected.Get("/product/:id", controllers.GetProduct)
	protected.Put("/product/:id", controllers.UpdateProduct)
	protected.Delete("/product/:id", middlewares.RequireRole("admin"), controllers.DeleteProduct)

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)
	protected.Delete("/customer/:id", middlewares.RequireRole("admin"), controllers.DeleteCustomer)

	// Ledger: sales, debts, settlements
	protected.Post("/sale", controllers.CreateSale)
	protected.Get("/sales", controllers.GetSales)
	protected.Get("/sale/:id", controllers.GetSale)
	protected.Get("/debts", controllers.GetDebts)
	protected.Post("/debts/:id/settle", controllers.SettleDebt)
	protected.Post("/customers/:id/settle-all", controllers.SettleAllDebts)
	protected.Get("/customers/:id/balance", controllers.GetCustomerBalance)

	// Invoice counter
	protected.Get("/invoice-number/next", controllers.NextInvoiceNumber)
	protected.Post("/invoice-number/reset", controllers.ResetDailyCounter)

	// Notifications
	protected.Get("/notifications", controllers.GetNotifications)
	protected.Get("/notifications/unread-count", controllers.UnreadCount)
	protected.Put("/notifications/read-all", controllers.MarkAllNotificationsRead)
	protected.Put("/notifications/:id/read", controllers.MarkNotificationRead)
	protected.Delete("/notifications", controllers.ClearNotifications)
	protected.Post("/notifications/scan", controllers.TriggerScan)

	// Settings
	protected.Get("/settings", controllers.GetSettings)
	protected.Put("/settings", middlewares.RequireRole("admin"), controllers.PutSetting)
}
