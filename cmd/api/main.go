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

	appplanning "github.com/jhoicas/Industria-api/internal/application/planning"
	"github.com/jhoicas/Industria-api/internal/application/pricing"
	infracache "github.com/jhoicas/Industria-api/internal/infrastructure/cache"
	"github.com/jhoicas/Industria-api/internal/infrastructure/esi"
	infrapdf "github.com/jhoicas/Industria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Industria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Industria-api/internal/interfaces/http"
	"github.com/jhoicas/Industria-api/pkg/config"
	"github.com/jhoicas/Industria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	// Catálogo SDE en PostgreSQL, decorado con caché en memoria (el SDE solo
	// cambia con parches del juego).
	catalogRepo := postgres.NewCatalogRepository(pool)
	catalog := infracache.NewCatalogCache(catalogRepo, cfg.Cache.CatalogTTL)

	// Precios de mercado: ESI con caché TTL y coalescencia de refrescos.
	priceFeed := esi.NewPriceClient(cfg.ESI.PricesURL, cfg.ESI.Timeout)
	prices := pricing.NewPriceCache(priceFeed, cfg.Cache.PriceTTL, log.Zerolog())

	// Planificador de fabricación.
	expander := appplanning.NewBOMExpander(catalog, log.Zerolog())
	resolver := appplanning.NewJobResolver(catalog, prices)
	planner := appplanning.NewBuildPlanner(catalog, expander, resolver, cfg.Plan.MaxReconcileIterations, log.Zerolog())

	// PDF: representación gráfica del plan de fabricación.
	pdfGenerator := infrapdf.NewMarotoPlanGenerator()
	reportUC := appplanning.NewReportUseCase(planner, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Industria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Planner:   planner,
		Report:    reportUC,
		Catalog:   catalog,
		JWTSecret: cfg.JWT.Secret,
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
