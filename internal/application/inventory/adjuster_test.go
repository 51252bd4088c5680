package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
	"github.com/dcastano/pos-inventario-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newAdjustFixture() (*memory.Store, *inventory.AdjustStockUseCase) {
	store := memory.NewStore()
	store.SeedWarehouse("AP", "Bodega Apartadó")
	store.SeedProduct("prod-1", "Panela pulverizada", dec("4500"))
	uc := inventory.NewAdjustStockUseCase(store, store.Products(), store.Warehouses())
	return store, uc
}

func TestAdjust_PrimerAjusteCreaRegistro(t *testing.T) {
	store, uc := newAdjustFixture()

	entry, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:     "prod-1",
		WarehouseCode: "AP",
		Delta:         dec("50"),
		Reason:        "entrada inicial",
	})
	require.NoError(t, err)

	assert.True(t, entry.QuantityBefore.IsZero())
	assert.True(t, entry.QuantityAfter.Equal(dec("50")))
	assert.Equal(t, entity.MovementKindAdjustment, entry.Kind)
	assert.True(t, store.StockQty("prod-1", "AP").Equal(dec("50")))
	assert.Equal(t, 1, store.MovementCount())
}

func TestAdjust_DebitoHastaCeroExactoPermitido(t *testing.T) {
	store, uc := newAdjustFixture()
	store.SeedStock("prod-1", "AP", dec("10"))

	entry, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:     "prod-1",
		WarehouseCode: "AP",
		Delta:         dec("-10"),
		Reason:        "merma",
	})
	require.NoError(t, err)

	assert.True(t, entry.QuantityAfter.IsZero())
	assert.True(t, store.StockQty("prod-1", "AP").IsZero())
}

func TestAdjust_InsuficienciaNoDejaRastro(t *testing.T) {
	store, uc := newAdjustFixture()
	store.SeedStock("prod-1", "AP", dec("10"))

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:     "prod-1",
		WarehouseCode: "AP",
		Delta:         dec("-10.5"),
		Reason:        "merma",
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("10")))
	assert.True(t, insufficient.Requested.Equal(dec("10.5")))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// El rollback no deja ni stock mutado ni filas del ledger.
	assert.True(t, store.StockQty("prod-1", "AP").Equal(dec("10")))
	assert.Equal(t, 0, store.MovementCount())
}

func TestAdjust_DeltaCeroRechazado(t *testing.T) {
	_, uc := newAdjustFixture()

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:     "prod-1",
		WarehouseCode: "AP",
		Delta:         decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_BodegaInactivaRechazada(t *testing.T) {
	store, uc := newAdjustFixture()
	require.NoError(t, store.Warehouses().Create(&entity.Warehouse{
		Code: "OFF", Name: "Bodega cerrada", Active: false,
	}))

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:     "prod-1",
		WarehouseCode: "OFF",
		Delta:         dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWarehouse)
}

// El ledger de un par (producto, bodega) debe encadenar: cada fila cumple
// before+delta=after y el before de cada fila es el after de la anterior.
// Reproducir la cantidad final desde las filas equivale al stock vigente.
func TestAdjust_LedgerReproduceElStock(t *testing.T) {
	store, uc := newAdjustFixture()

	for _, delta := range []string{"100", "-30", "12.5", "-0.5"} {
		_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
			ProductID:     "prod-1",
			WarehouseCode: "AP",
			Delta:         dec(delta),
			Reason:        "conteo",
		})
		require.NoError(t, err)
	}

	entries, err := store.Movements().List(repository.MovementFilter{
		ProductID:     "prod-1",
		WarehouseCode: "AP",
	})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	running := decimal.Zero
	for _, e := range entries {
		assert.True(t, e.QuantityBefore.Equal(running))
		assert.True(t, e.QuantityBefore.Add(e.QuantityDelta).Equal(e.QuantityAfter))
		running = e.QuantityAfter
	}
	assert.True(t, running.Equal(store.StockQty("prod-1", "AP")))
	assert.True(t, running.Equal(dec("82")))
}
