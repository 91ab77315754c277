package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/Vitrine-api/internal/application/analytics"
	"github.com/jhoicas/Vitrine-api/internal/application/auth"
	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/referral"
	"github.com/jhoicas/Vitrine-api/internal/application/storefront"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	ImageUC      *usecase.ImageUseCase
	CategoryUC   *usecase.CategoryUseCase
	UserUC       *usecase.UserUseCase
	PriceQuoteUC *usecase.PriceQuoteUseCase
	CopyUC       *catalog.CopyUseCase
	ImageLimitUC *catalog.ImageLimitUseCase
	ExportUC     *catalog.ExportUseCase
	StorefrontUC *storefront.UseCase
	ReferralUC   *referral.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
	PublicURL    string
	// HTTPMetrics y Gatherer son opcionales: sin ellos no se exponen métricas.
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.HTTPMetrics != nil {
		app.Use(MetricsMiddleware(deps.HTTPMetrics))
	}
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	requireActive := RequireActiveAccount(deps.UserUC)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Vitrina pública, feed y cotización por cantidad
	storefrontHandler := NewStorefrontHandler(deps.StorefrontUC, deps.PriceQuoteUC, deps.ExportUC, deps.PublicURL)
	public := api.Group("/public")
	public.Get("/stores/:slug", storefrontHandler.GetBySlug)
	public.Get("/stores/:slug/feed.xml", storefrontHandler.Feed)
	public.Get("/products/:id/price", storefrontHandler.Quote)

	// Perfil de la vitrina (protegido)
	api.Put("/profile", requireAuth, requireActive, storefrontHandler.UpdateProfile)

	// Products (protegido)
	productHandler := NewProductHandler(deps.ProductUC, deps.ExportUC)
	imageHandler := NewImageHandler(deps.ImageUC, deps.ImageLimitUC)
	products := api.Group("/products", requireAuth, requireActive)
	products.Get("/export/pdf", productHandler.ExportPDF)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/price-tiers", productHandler.ListPriceTiers)
	products.Put("/:id/price-tiers", productHandler.SetPriceTiers)
	products.Get("/:id/images", imageHandler.List)
	products.Post("/:id/images", imageHandler.Add)
	products.Put("/:id/images/order", imageHandler.Reorder)
	products.Put("/:id/images/:imageId/featured", imageHandler.SetFeatured)
	products.Delete("/:id/images/:imageId", imageHandler.Delete)

	api.Post("/images/validate-limit", requireAuth, imageHandler.ValidateLimit)

	// Categories (protegido)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories", requireAuth, requireActive)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Post("/sync", categoryHandler.Sync)
	categories.Delete("/:id", categoryHandler.Delete)

	// Indicaciones y retiros PIX (protegido)
	referralHandler := NewReferralHandler(deps.ReferralUC)
	ref := api.Group("/referral", requireAuth, requireActive)
	ref.Get("/summary", referralHandler.Summary)
	ref.Get("/commissions", referralHandler.Commissions)
	ref.Put("/pix-key", referralHandler.SetPixKey)
	ref.Post("/payouts", referralHandler.RequestPayout)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", requireAuth, dashboardHandler.GetSummary)

	// Back-office (solo admin)
	adminHandler := NewAdminHandler(deps.CopyUC, deps.UserUC, deps.ImageLimitUC)
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleAdmin))
	admin.Post("/copy-products", adminHandler.CopyProducts)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Patch("/users/:id", adminHandler.UpdateUser)
	admin.Put("/users/:id/image-limit", adminHandler.SetImageLimit)
	admin.Post("/referral/payments", referralHandler.RecordPayment)
	admin.Get("/payouts", referralHandler.ListPayouts)
	admin.Put("/payouts/:id", referralHandler.ProcessPayout)
	admin.Get("/dashboard/financial", dashboardHandler.GetFinancial)
}
