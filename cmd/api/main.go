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

	"github.com/jhoicas/mipymes-api/internal/application/costing"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/application/pricing"
	"github.com/jhoicas/mipymes-api/internal/application/production"
	"github.com/jhoicas/mipymes-api/internal/application/sales"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
	domaincosting "github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/memory"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/mipymes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mipymes-api/internal/interfaces/http"
	"github.com/jhoicas/mipymes-api/pkg/config"
	"github.com/jhoicas/mipymes-api/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		store repository.Store
		tx    ports.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		db := memory.New()
		store, tx = db.Store(), memory.NewTxRunner(db)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		store, tx = postgres.NewStore(pool), postgres.NewTxRunner(pool)
	}

	taxBase, err := domaincosting.ParseTaxBase(cfg.Costing.TaxBase)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de costeo")
	}
	engine := domaincosting.NewEngine(taxBase)

	var (
		recorder ports.Recorder = ports.NopRecorder{}
		registry *metrics.Registry
	)
	if cfg.Metrics.Enabled {
		registry = metrics.New(true)
		recorder = registry
	}

	zl := log.Zerolog()
	prices := pricing.NewPropagator(tx, engine, recorder, zl.With().Str("component", "pricing").Logger())

	var scheduler *pricing.Scheduler
	if cfg.Pricing.SweepCron != "" {
		scheduler, err = pricing.NewScheduler(cfg.Pricing.SweepCron, prices, zl.With().Str("component", "pricing-sweep").Logger())
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Pricing.SweepCron).Msg("expresión cron inválida")
		}
		scheduler.Start()
	}

	deps := httpRouter.RouterDeps{
		MipymeUC:   usecase.NewMipymeUseCase(store, tx, prices),
		UnitUC:     usecase.NewUnitUseCase(store.Units),
		MaterialUC: usecase.NewMaterialUseCase(store, tx, prices, zl),
		ProcessUC:  usecase.NewProcessUseCase(store, tx, prices),
		TaxUC:      usecase.NewTaxUseCase(store, tx, prices),
		ProductUC:  usecase.NewProductUseCase(store, tx, prices),
		RecipeUC:   usecase.NewRecipeUseCase(store, tx, prices),
		CostingUC:  costing.NewCostingUseCase(store, engine),
		BatchUC:    production.NewBatchUseCase(store, tx, engine, recorder, zl.With().Str("component", "production").Logger()),
		SaleUC:     sales.NewSaleUseCase(store, tx, infrapdf.NewReceiptGenerator(), recorder, zl.With().Str("component", "sales").Logger()),
		Pricing:    prices,
		JWTSecret:  cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if registry != nil {
		app.Use(registry.Middleware())
		app.Get("/metrics", registry.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Mipymes API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

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
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	log.Info().Msg("aplicación detenida")
}
