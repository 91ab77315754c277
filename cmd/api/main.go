package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appanalytics "github.com/jhoicas/Vitrine-api/internal/application/analytics"
	"github.com/jhoicas/Vitrine-api/internal/application/auth"
	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/referral"
	"github.com/jhoicas/Vitrine-api/internal/application/storefront"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain/media"
	infracache "github.com/jhoicas/Vitrine-api/internal/infrastructure/cache"
	infrafeed "github.com/jhoicas/Vitrine-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/Vitrine-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Vitrine-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Vitrine-api/internal/infrastructure/postgres/migrations"
	httpRouter "github.com/jhoicas/Vitrine-api/internal/interfaces/http"
	"github.com/jhoicas/Vitrine-api/pkg/config"
	"github.com/jhoicas/Vitrine-api/pkg/logger"
	"github.com/jhoicas/Vitrine-api/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		if err := migrations.Run(ctx, db, "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		_ = db.Close()
		log.Info().Msg("migraciones aplicadas")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	imageRepo := postgres.NewProductImageRepository(pool)
	tierRepo := postgres.NewPriceTierRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	referralRepo := postgres.NewReferralRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Registro de blob URLs: vive lo que vive el proceso.
	blobRegistry := media.NewBlobRegistry()
	defer func() { _ = blobRegistry.Close() }()

	// Caché de vitrinas públicas: opcional, solo con REDIS_URL.
	var storefrontCache storefront.Cache
	if cfg.Redis.URL != "" {
		client, err := infracache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, vitrinas sin caché")
		} else {
			defer func() { _ = client.Close() }()
			storefrontCache = infracache.NewStorefrontCache(client, time.Duration(cfg.Redis.StorefrontTTL)*time.Second)
		}
	}

	loader := catalog.NewLoader(imageRepo, tierRepo)
	imageLimitUC := catalog.NewImageLimitUseCase(userRepo, productRepo, imageRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	copyUC := catalog.NewCopyUseCase(
		productRepo, imageRepo, tierRepo, categoryRepo,
		txRunner, categoryUC, metrics.NewCatalogMetrics(reg), log.Zerolog(),
	)
	exportUC := catalog.NewExportUseCase(
		userRepo, productRepo, loader,
		infrapdf.NewMarotoPDFGenerator(), infrafeed.NewRSSEncoder(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Catalog.DefaultImageLimit)
	referralUC := referral.NewUseCase(userRepo, referralRepo, txRunner, referral.Config{
		CommissionRate:  cfg.Referral.CommissionRate,
		PayoutMinAmount: cfg.Referral.PayoutMinAmount,
	}, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true, // los parámetros de ruta se guardan más allá del request
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Vitrine API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    usecase.NewProductUseCase(productRepo, tierRepo, categoryRepo, loader, txRunner, log.Zerolog()),
		ImageUC:      usecase.NewImageUseCase(productRepo, imageRepo, imageLimitUC, blobRegistry, log.Zerolog()),
		CategoryUC:   categoryUC,
		UserUC:       usecase.NewUserUseCase(userRepo),
		PriceQuoteUC: usecase.NewPriceQuoteUseCase(productRepo, tierRepo),
		CopyUC:       copyUC,
		ImageLimitUC: imageLimitUC,
		ExportUC:     exportUC,
		StorefrontUC: storefront.NewUseCase(userRepo, productRepo, loader, storefrontCache, log.Zerolog()),
		ReferralUC:   referralUC,
		DashboardUC:  appanalytics.NewDashboardUseCase(analyticsRepo, userRepo, referralRepo),
		JWTSecret:    cfg.JWT.Secret,
		PublicURL:    cfg.HTTP.PublicURL,
		HTTPMetrics:  metrics.NewHTTPMetrics(reg),
		Gatherer:     reg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
