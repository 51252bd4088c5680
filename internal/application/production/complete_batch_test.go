package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/pos-inventario-api/internal/application/production"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Fixture: receta que rinde 100 a granel consumiendo 80 de mat-a (costo 350)
// y 20 de mat-b (costo 100); empaques bolsa x24 y unidad suelta.
type batchFixture struct {
	store *memory.Store
	uc    *production.CompleteBatchUseCase
	batch *entity.ProductionBatch
}

func newBatchFixture(t *testing.T) *batchFixture {
	t.Helper()
	store := memory.NewStore()
	store.SeedWarehouse("AP", "Bodega Apartadó")
	store.SeedProduct("prod-1", "Panela pulverizada", dec("4500"))
	store.SeedMaterial("mat-a", "Caña de azúcar", dec("1000"), dec("350"))
	store.SeedMaterial("mat-b", "Clarificante", dec("1000"), dec("100"))

	now := time.Now()
	require.NoError(t, store.Recipes().Create(&entity.Recipe{
		ID:            "rec-1",
		Name:          "Panela estándar",
		ProductID:     "prod-1",
		YieldQuantity: dec("100"),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
		Ingredients: []entity.RecipeIngredient{
			{ID: "ing-a", RawMaterialID: "mat-a", Quantity: dec("80")},
			{ID: "ing-b", RawMaterialID: "mat-b", Quantity: dec("20")},
		},
	}))
	require.NoError(t, store.PackagingTypes().Create(&entity.PackagingType{
		ID: "pkg-bolsa", Name: "Bolsa x24", UnitEquivalent: dec("24"), Active: true,
	}))
	require.NoError(t, store.PackagingTypes().Create(&entity.PackagingType{
		ID: "pkg-unidad", Name: "Unidad suelta", UnitEquivalent: dec("1"), Active: true,
	}))

	batch := &entity.ProductionBatch{
		ID:              "lote-1",
		RecipeID:        "rec-1",
		PlannedQuantity: dec("100"),
		State:           entity.BatchStatePlanned,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, store.Batches().Create(batch))

	uc := production.NewCompleteBatchUseCase(
		store,
		store.Batches(),
		store.Recipes(),
		store.PackagingTypes(),
		store.Warehouses(),
	)
	return &batchFixture{store: store, uc: uc, batch: batch}
}

// Producir 50 (media corrida) consume 40 de mat-a y 10 de mat-b:
// costo total 40*350 + 10*100 = 15000, unitario 300. El desglose
// 2 bolsas x24 + 2 unidades acredita exactamente los 50 producidos.
func TestComplete_ConsumoCosteoYAcreditacion(t *testing.T) {
	f := newBatchFixture(t)

	done, err := f.uc.Complete(context.Background(), production.CompleteBatchInput{
		BatchID:          "lote-1",
		WarehouseCode:    "AP",
		ProducedQuantity: dec("50"),
		Breakdown: []production.PackagingLine{
			{PackagingTypeID: "pkg-bolsa", Count: 2},
			{PackagingTypeID: "pkg-unidad", Count: 2},
		},
	})
	require.NoError(t, err)

	assert.True(t, f.store.MaterialStock("mat-a").Equal(dec("960")))
	assert.True(t, f.store.MaterialStock("mat-b").Equal(dec("990")))
	assert.True(t, f.store.StockQty("prod-1", "AP").Equal(dec("50")))

	assert.Equal(t, entity.BatchStateCompleted, done.State)
	assert.True(t, done.TotalCost.Equal(dec("15000")))
	assert.True(t, done.UnitCost.Equal(dec("300")))
	assert.Equal(t, "AP", done.WarehouseCode)
	require.NotNil(t, done.CompletedAt)
	require.Len(t, done.Packaging, 2)
	assert.True(t, done.Packaging[0].Quantity.Equal(dec("48")))
	assert.True(t, done.Packaging[1].Quantity.Equal(dec("2")))

	// Dos débitos de materia prima + dos créditos de producto.
	assert.Equal(t, 4, f.store.MovementCount())
}

// La insuficiencia de cualquier ingrediente aborta toda la completación:
// mat-a ya se había debitado cuando mat-b falla, y debe quedar intacto.
func TestComplete_IngredienteInsuficienteRevierteTodo(t *testing.T) {
	f := newBatchFixture(t)
	f.store.SeedMaterial("mat-b", "Clarificante", dec("5"), dec("100"))

	_, err := f.uc.Complete(context.Background(), production.CompleteBatchInput{
		BatchID:          "lote-1",
		WarehouseCode:    "AP",
		ProducedQuantity: dec("50"),
		Breakdown: []production.PackagingLine{
			{PackagingTypeID: "pkg-unidad", Count: 50},
		},
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("5")))
	assert.True(t, insufficient.Requested.Equal(dec("10")))

	assert.True(t, f.store.MaterialStock("mat-a").Equal(dec("1000")))
	assert.True(t, f.store.MaterialStock("mat-b").Equal(dec("5")))
	assert.True(t, f.store.StockQty("prod-1", "AP").IsZero())
	assert.Equal(t, 0, f.store.MovementCount())

	batch, err := f.store.Batches().GetByID("lote-1")
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatePlanned, batch.State)
}

func TestComplete_DobleCompletacionFalla(t *testing.T) {
	f := newBatchFixture(t)
	input := production.CompleteBatchInput{
		BatchID:          "lote-1",
		WarehouseCode:    "AP",
		ProducedQuantity: dec("50"),
		Breakdown: []production.PackagingLine{
			{PackagingTypeID: "pkg-unidad", Count: 50},
		},
	}

	_, err := f.uc.Complete(context.Background(), input)
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), input)
	require.Error(t, err)
	var invalid *domain.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.BatchStateCompleted, invalid.Current)

	// El segundo intento no aplicó nada encima del primero.
	assert.True(t, f.store.MaterialStock("mat-a").Equal(dec("960")))
	assert.True(t, f.store.StockQty("prod-1", "AP").Equal(dec("50")))
	assert.Equal(t, 3, f.store.MovementCount())
}

// Si el crédito del producto terminado falla por persistencia, los débitos
// de materia prima ya hechos se revierten junto con él.
func TestComplete_FalloEnCreditoRevierteConsumos(t *testing.T) {
	f := newBatchFixture(t)

	boom := errors.New("fallo de persistencia simulado")
	f.store.MovementCreateErr = func(entry *entity.MovementEntry) error {
		if entry.ProductID != "" {
			return boom
		}
		return nil
	}

	_, err := f.uc.Complete(context.Background(), production.CompleteBatchInput{
		BatchID:          "lote-1",
		WarehouseCode:    "AP",
		ProducedQuantity: dec("50"),
		Breakdown: []production.PackagingLine{
			{PackagingTypeID: "pkg-unidad", Count: 50},
		},
	})
	require.ErrorIs(t, err, boom)

	assert.True(t, f.store.MaterialStock("mat-a").Equal(dec("1000")))
	assert.True(t, f.store.MaterialStock("mat-b").Equal(dec("1000")))
	assert.True(t, f.store.StockQty("prod-1", "AP").IsZero())
	assert.Equal(t, 0, f.store.MovementCount())

	batch, err := f.store.Batches().GetByID("lote-1")
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatePlanned, batch.State)
}

func TestComplete_DesgloseVacioRechazado(t *testing.T) {
	f := newBatchFixture(t)

	_, err := f.uc.Complete(context.Background(), production.CompleteBatchInput{
		BatchID:          "lote-1",
		WarehouseCode:    "AP",
		ProducedQuantity: dec("50"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cancelar un lote jamás toca stock ni ledger, y un lote cancelado ya no
// puede completarse.
func TestCancel_NoTocaStockYBloqueaCompletacion(t *testing.T) {
	f := newBatchFixture(t)
	lifecycle := production.NewBatchUseCase(f.store.Batches(), f.store.Recipes())

	cancelled, err := lifecycle.Cancel(context.Background(), "lote-1")
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStateCancelled, cancelled.State)
	assert.Equal(t, 0, f.store.MovementCount())
	assert.True(t, f.store.MaterialStock("mat-a").Equal(dec("1000")))

	_, err = f.uc.Complete(context.Background(), production.CompleteBatchInput{
		BatchID:          "lote-1",
		WarehouseCode:    "AP",
		ProducedQuantity: dec("50"),
		Breakdown: []production.PackagingLine{
			{PackagingTypeID: "pkg-unidad", Count: 50},
		},
	})
	var invalid *domain.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.BatchStateCancelled, invalid.Current)
}
