// seed puebla la base de desarrollo con datos mínimos para probar la API:
// un admin, dos bodegas (AP y MMM), un producto terminado, materias primas,
// una receta y un tipo de empaque.
//
// Uso: go run ./cmd/seed
// Idempotente a nivel de duplicados obvios: los inserts que chocan con un
// registro existente se reportan y se continúa.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/infrastructure/postgres"
	"github.com/dcastano/pos-inventario-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}
	userRepo := postgres.NewUserRepository(pool)
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@local",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	report("usuario admin@local", userRepo.Create(admin))

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	for _, w := range []*entity.Warehouse{
		{Code: "AP", Name: "Bodega Apartadó", Active: true, CreatedAt: now, UpdatedAt: now},
		{Code: "MMM", Name: "Punto de venta MMM", Active: true, CreatedAt: now, UpdatedAt: now},
	} {
		report("bodega "+w.Code, warehouseRepo.Create(w))
	}

	productRepo := postgres.NewProductRepository(pool)
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      "Panela pulverizada",
		Unit:      "und",
		Price:     decimal.RequireFromString("4500"),
		MinStock:  decimal.RequireFromString("20"),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	report("producto "+product.Name, productRepo.Create(product))

	materialRepo := postgres.NewRawMaterialRepository(pool)
	cane := &entity.RawMaterial{
		ID:          uuid.New().String(),
		Name:        "Caña de azúcar",
		Unit:        "kg",
		CostPerUnit: decimal.RequireFromString("350"),
		MinStock:    decimal.RequireFromString("100"),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	report("materia prima "+cane.Name, materialRepo.Create(cane))

	recipeRepo := postgres.NewRecipeRepository(pool)
	recipe := &entity.Recipe{
		ID:            uuid.New().String(),
		Name:          "Panela estándar",
		ProductID:     product.ID,
		YieldQuantity: decimal.RequireFromString("100"),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
		Ingredients: []entity.RecipeIngredient{
			{
				ID:            uuid.New().String(),
				RawMaterialID: cane.ID,
				Quantity:      decimal.RequireFromString("800"),
			},
		},
	}
	report("receta "+recipe.Name, recipeRepo.Create(recipe))

	packagingRepo := postgres.NewPackagingTypeRepository(pool)
	bag := &entity.PackagingType{
		ID:             uuid.New().String(),
		Name:           "Bolsa x24",
		UnitEquivalent: decimal.RequireFromString("24"),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	report("empaque "+bag.Name, packagingRepo.Create(bag))

	fmt.Println("seed completado")
}

func report(what string, err error) {
	switch {
	case err == nil:
		fmt.Printf("ok: %s\n", what)
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Printf("ya existe: %s\n", what)
	default:
		fmt.Fprintf(os.Stderr, "error en %s: %v\n", what, err)
		os.Exit(1)
	}
}
