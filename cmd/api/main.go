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

	"github.com/dcastano/pos-inventario-api/internal/application/auth"
	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/application/production"
	"github.com/dcastano/pos-inventario-api/internal/application/sales"
	"github.com/dcastano/pos-inventario-api/internal/application/usecase"
	"github.com/dcastano/pos-inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/dcastano/pos-inventario-api/internal/interfaces/http"
	"github.com/dcastano/pos-inventario-api/pkg/config"
	"github.com/dcastano/pos-inventario-api/pkg/logger"
)

const swaggerSpecPath = "./docs/swagger.json"

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	materialRepo := postgres.NewRawMaterialRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	packagingRepo := postgres.NewPackagingTypeRepository(pool)
	batchRepo := postgres.NewProductionBatchRepository(pool)
	stockRepo := postgres.NewStockRecordRepository(pool)
	movRepo := postgres.NewMovementEntryRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	materialUC := usecase.NewRawMaterialUseCase(materialRepo, txRunner)
	recipeUC := usecase.NewRecipeUseCase(recipeRepo, productRepo, materialRepo)
	packagingUC := usecase.NewPackagingUseCase(packagingRepo)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo, warehouseRepo)
	inventoryQ := inventory.NewQueryUseCase(stockRepo, movRepo)
	transferUC := inventory.NewTransferUseCase(txRunner, productRepo, warehouseRepo)
	batchUC := production.NewBatchUseCase(batchRepo, recipeRepo)
	completeBatchUC := production.NewCompleteBatchUseCase(txRunner, batchRepo, recipeRepo, packagingRepo, warehouseRepo)
	saleUC := sales.NewPostSaleUseCase(txRunner, productRepo, warehouseRepo, saleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware aborta
	// si el archivo no existe, así que solo se monta cuando hay spec generada.
	if fileExists(swaggerSpecPath) {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpecPath,
			Path:     "docs",
			Title:    "POS Inventario API",
		}))
	} else {
		log.Warn().Str("path", swaggerSpecPath).Msg("especificación OpenAPI no encontrada, Swagger UI deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		WarehouseUC:   warehouseUC,
		ProductUC:     productUC,
		RawMaterialUC: materialUC,
		RecipeUC:      recipeUC,
		PackagingUC:   packagingUC,
		AdjustStock:   adjustStockUC,
		InventoryQ:    inventoryQ,
		TransferUC:    transferUC,
		TransferRepo:  transferRepo,
		BatchUC:       batchUC,
		CompleteBatch: completeBatchUC,
		SaleUC:        saleUC,
		JWTSecret:     cfg.JWT.Secret,
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
