package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/pos-inventario-api/internal/application/auth"
	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/application/production"
	"github.com/dcastano/pos-inventario-api/internal/application/sales"
	"github.com/dcastano/pos-inventario-api/internal/application/usecase"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	RawMaterialUC *usecase.RawMaterialUseCase
	RecipeUC      *usecase.RecipeUseCase
	PackagingUC   *usecase.PackagingUseCase
	AdjustStock   *inventory.AdjustStockUseCase
	InventoryQ    *inventory.QueryUseCase
	TransferUC    *inventory.TransferUseCase
	TransferRepo  repository.TransferRepository
	BatchUC       *production.BatchUseCase
	CompleteBatch *production.CompleteBatchUseCase
	SaleUC        *sales.PostSaleUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Escrituras de inventario y producción
// requieren admin o bodeguero; ventas, admin o vendedor; las lecturas quedan
// abiertas a cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	storeKeeper := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	seller := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:code", warehouseHandler.GetByCode)
	warehouses.Put("/:code", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:code", adminOnly, warehouseHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", storeKeeper, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", storeKeeper, productHandler.Update)

	// Raw materials
	materials := protected.Group("/raw-materials")
	materialHandler := NewRawMaterialHandler(deps.RawMaterialUC)
	materials.Post("/", storeKeeper, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", storeKeeper, materialHandler.Update)
	materials.Post("/:id/restock", storeKeeper, materialHandler.Restock)

	// Recipes
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", storeKeeper, recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)

	// Packaging types
	packaging := protected.Group("/packaging-types")
	packagingHandler := NewPackagingHandler(deps.PackagingUC)
	packaging.Post("/", storeKeeper, packagingHandler.Create)
	packaging.Get("/", packagingHandler.List)
	packaging.Get("/:id", packagingHandler.GetByID)
	packaging.Put("/:id", storeKeeper, packagingHandler.Update)

	// Stock y ledger
	stockHandler := NewStockHandler(deps.AdjustStock, deps.InventoryQ)
	protected.Get("/stock", stockHandler.Stock)
	protected.Post("/stock/adjustments", storeKeeper, stockHandler.Adjust)
	protected.Get("/movements", stockHandler.Movements)

	// Transfers
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.TransferRepo)
	transfers.Post("/", storeKeeper, transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)

	// Production batches
	batches := protected.Group("/production/batches")
	productionHandler := NewProductionHandler(deps.BatchUC, deps.CompleteBatch)
	batches.Post("/", storeKeeper, productionHandler.Create)
	batches.Get("/", productionHandler.List)
	batches.Get("/:id", productionHandler.GetByID)
	batches.Post("/:id/start", storeKeeper, productionHandler.Start)
	batches.Post("/:id/complete", storeKeeper, productionHandler.Complete)
	batches.Post("/:id/cancel", storeKeeper, productionHandler.Cancel)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", seller, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", seller, saleHandler.Cancel)
}
