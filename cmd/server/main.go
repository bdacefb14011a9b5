package main

import (
	"strings"

	"stonecrm-backend/internal/activity"
	"stonecrm-backend/internal/admin"
	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/cart"
	"stonecrm-backend/internal/clients"
	"stonecrm-backend/internal/config"
	"stonecrm-backend/internal/dashboard"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/inventory"
	"stonecrm-backend/internal/models"
	"stonecrm-backend/internal/pipeline"
	"stonecrm-backend/internal/publicapi"
	"stonecrm-backend/internal/quote"
	"stonecrm-backend/internal/reports"
	"stonecrm-backend/internal/salesrep"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.WithError(err).Error("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public storefront (no auth)
	public := api.Group("/public")
	public.Get("/products", publicapi.ListPublicProductsHandler())
	public.Get("/products/:id", publicapi.GetPublicProductHandler())
	public.Get("/sales-reps", publicapi.ListPublicSalesRepsHandler())
	public.Get("/sales-reps/:slug", publicapi.GetPublicSalesRepHandler())
	public.Post("/sessions", publicapi.CreateSessionHandler())
	public.Get("/sessions/:token", publicapi.GetSessionHandler())
	public.Delete("/sessions/:token", publicapi.DeleteSessionHandler())
	public.Put("/sessions/:token/email", publicapi.RememberEmailHandler())
	public.Post("/sessions/:token/recently-viewed", publicapi.PushRecentlyViewedHandler())
	public.Post("/sessions/:token/favorites", publicapi.AddFavoriteHandler())
	public.Delete("/sessions/:token/favorites/:productID", publicapi.RemoveFavoriteHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin-only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())

	// Inventory write access
	inventoryWrite := auth.RequireRole(models.RoleAdmin, models.RoleInventorySpecialist)

	// Products
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/:id", inventory.GetProductHandler())
	protected.Post("/products", inventoryWrite, inventory.CreateProductHandler())
	protected.Put("/products/:id", inventoryWrite, inventory.UpdateProductHandler())
	protected.Delete("/products/:id", auth.RequireRole(models.RoleAdmin), inventory.DeleteProductHandler())
	protected.Post("/products/:id/slabs/bulk", inventoryWrite, inventory.BulkCreateSlabsHandler())

	// Slabs
	protected.Get("/slabs", inventory.ListSlabsHandler())
	protected.Post("/slabs", inventoryWrite, inventory.CreateSlabHandler())
	protected.Put("/slabs/:id", inventoryWrite, inventory.UpdateSlabHandler())
	protected.Patch("/slabs/:id/status", inventory.UpdateSlabStatusHandler())
	protected.Delete("/slabs/:id", inventoryWrite, inventory.DeleteSlabHandler())

	// Clients
	protected.Get("/clients", clients.ListClientsHandler())
	protected.Get("/clients/:id", clients.GetClientHandler())
	protected.Get("/clients/:id/quotes", clients.ListClientQuotesHandler())
	protected.Post("/clients", clients.CreateClientHandler())
	protected.Put("/clients/:id", clients.UpdateClientHandler())
	protected.Delete("/clients/:id", auth.RequireRole(models.RoleAdmin), clients.DeleteClientHandler())

	// Carts
	protected.Get("/carts", cart.ListCartsHandler())
	protected.Get("/carts/:id", cart.GetCartHandler())
	protected.Post("/carts", cart.CreateCartHandler())
	protected.Delete("/carts/:id", cart.DeleteCartHandler())
	protected.Patch("/carts/:id/status", cart.UpdateCartStatusHandler())
	protected.Post("/carts/:id/items", cart.AddItemHandler())
	protected.Put("/carts/:id/items/:itemID", cart.UpdateItemQuantityHandler())
	protected.Delete("/carts/:id/items/:itemID", cart.RemoveItemHandler())
	protected.Post("/carts/:id/convert-to-quote", quote.ConvertCartHandler(cfg))

	// Quotes
	quoteDecision := auth.RequireRole(models.RoleAdmin, models.RoleSalesLeader)
	protected.Get("/quotes", quote.ListQuotesHandler())
	protected.Get("/quotes/:id", quote.GetQuoteHandler())
	protected.Post("/quotes", quote.CreateQuoteHandler(cfg))
	protected.Put("/quotes/:id", quote.UpdateQuoteHandler(cfg))
	protected.Delete("/quotes/:id", auth.RequireRole(models.RoleAdmin), quote.DeleteQuoteHandler())
	protected.Post("/quotes/:id/approve", quoteDecision, quote.ApproveQuoteHandler())
	protected.Post("/quotes/:id/reject", quoteDecision, quote.RejectQuoteHandler())
	protected.Patch("/quotes/:id/status", quote.UpdateQuoteStatusHandler())
	protected.Patch("/quotes/:id/stage", quote.UpdateQuoteStageHandler())

	// Pipeline
	protected.Get("/pipeline", pipeline.ListPipelineItemsHandler())
	protected.Post("/pipeline", pipeline.CreatePipelineItemHandler())
	protected.Put("/pipeline/:id", pipeline.UpdatePipelineItemHandler())
	protected.Delete("/pipeline/:id", pipeline.DeletePipelineItemHandler())

	// Sales rep profiles
	protected.Get("/sales-rep-profiles", salesrep.ListProfilesHandler())
	protected.Put("/sales-rep-profiles", salesrep.UpsertProfileHandler())
	protected.Delete("/sales-rep-profiles/:id", auth.RequireRole(models.RoleAdmin), salesrep.DeleteProfileHandler())

	// Reports
	protected.Get("/reports", reports.ListReportsHandler())
	protected.Get("/reports/sales-summary", reports.SalesSummaryHandler())
	protected.Get("/reports/top-clients", reports.TopClientsHandler())
	protected.Get("/reports/inventory", reports.InventoryReportHandler())
	protected.Get("/reports/pipeline", reports.PipelineReportHandler())
	protected.Post("/reports/generate", reports.GenerateReportHandler())

	// Dashboard
	protected.Get("/dashboard/revenue-chart", dashboard.RevenueChartHandler())
	protected.Get("/dashboard/recent-quotes", dashboard.RecentQuotesHandler())

	// Activity trail
	protected.Get("/activities", activity.ListActivitiesHandler())

	log.Info("server listening on port ", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
