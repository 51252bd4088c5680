package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/pos-inventario-api/internal/application/sales"
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

func newSaleFixture() (*memory.Store, *sales.PostSaleUseCase) {
	store := memory.NewStore()
	store.SeedWarehouse("MMM", "Punto de venta MMM")
	store.SeedProduct("prod-1", "Panela pulverizada", dec("4500"))
	store.SeedStock("prod-1", "MMM", dec("20"))
	uc := sales.NewPostSaleUseCase(store, store.Products(), store.Warehouses(), store.Sales())
	return store, uc
}

func TestPostSale_DebitaStockYRegistraVenta(t *testing.T) {
	store, uc := newSaleFixture()

	sale, err := uc.PostSale(context.Background(), sales.PostSaleInput{
		ProductID:     "prod-1",
		WarehouseCode: "MMM",
		Quantity:      dec("3"),
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)

	// Precio de lista del producto al no haber override.
	assert.True(t, sale.UnitPrice.Equal(dec("4500")))
	assert.True(t, sale.Total.Equal(dec("13500")))
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	require.NotEmpty(t, sale.MovementID)

	assert.True(t, store.StockQty("prod-1", "MMM").Equal(dec("17")))
	assert.Equal(t, 1, store.MovementCount())

	mov, err := store.Movements().GetByID(sale.MovementID)
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementKindSale, mov.Kind)
	assert.True(t, mov.QuantityDelta.Equal(dec("-3")))
	assert.Equal(t, sale.ID, mov.ReferenceID)
}

func TestPostSale_PrecioOverride(t *testing.T) {
	_, uc := newSaleFixture()

	promo := dec("4000")
	sale, err := uc.PostSale(context.Background(), sales.PostSaleInput{
		ProductID:     "prod-1",
		WarehouseCode: "MMM",
		Quantity:      dec("2"),
		UnitPrice:     &promo,
	})
	require.NoError(t, err)
	assert.True(t, sale.UnitPrice.Equal(dec("4000")))
	assert.True(t, sale.Total.Equal(dec("8000")))
}

func TestPostSale_PrecioNegativoRechazado(t *testing.T) {
	_, uc := newSaleFixture()

	bad := dec("-1")
	_, err := uc.PostSale(context.Background(), sales.PostSaleInput{
		ProductID:     "prod-1",
		WarehouseCode: "MMM",
		Quantity:      dec("1"),
		UnitPrice:     &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostSale_InsuficienciaNoCreaVenta(t *testing.T) {
	store, uc := newSaleFixture()

	_, err := uc.PostSale(context.Background(), sales.PostSaleInput{
		ProductID:     "prod-1",
		WarehouseCode: "MMM",
		Quantity:      dec("25"),
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("20")))
	assert.True(t, insufficient.Requested.Equal(dec("25")))

	assert.True(t, store.StockQty("prod-1", "MMM").Equal(dec("20")))
	assert.Equal(t, 0, store.MovementCount())

	ventas, err := store.Sales().List(0, 0)
	require.NoError(t, err)
	assert.Empty(t, ventas)
}

func TestPostSale_ProductoInactivoRechazado(t *testing.T) {
	store, uc := newSaleFixture()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "prod-off", Name: "Descontinuado", Unit: "und", Active: false,
	}))

	_, err := uc.PostSale(context.Background(), sales.PostSaleInput{
		ProductID:     "prod-off",
		WarehouseCode: "MMM",
		Quantity:      dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

// La anulación reacredita con un movimiento nuevo tipo adjustment; el
// movimiento original del débito queda intacto en el ledger.
func TestCancelSale_ReacreditaConMovimientoNuevo(t *testing.T) {
	store, uc := newSaleFixture()

	sale, err := uc.PostSale(context.Background(), sales.PostSaleInput{
		ProductID:     "prod-1",
		WarehouseCode: "MMM",
		Quantity:      dec("3"),
	})
	require.NoError(t, err)

	cancelled, err := uc.CancelSale(context.Background(), sale.ID, "", "producto devuelto")
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.True(t, store.StockQty("prod-1", "MMM").Equal(dec("20")))
	assert.Equal(t, 2, store.MovementCount())

	// El débito original sigue ahí, sin modificar.
	original, err := store.Movements().GetByID(sale.MovementID)
	require.NoError(t, err)
	require.NotNil(t, original)
	assert.Equal(t, entity.MovementKindSale, original.Kind)
	assert.True(t, original.QuantityDelta.Equal(dec("-3")))

	// Y la reacreditación es una fila nueva que referencia la venta.
	entries, err := store.Movements().List(repository.MovementFilter{ReferenceID: sale.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	credit := entries[1]
	assert.Equal(t, entity.MovementKindAdjustment, credit.Kind)
	assert.True(t, credit.QuantityDelta.Equal(dec("3")))
	assert.Equal(t, "producto devuelto", credit.Reason)
}

func TestCancelSale_DobleAnulacionFalla(t *testing.T) {
	store, uc := newSaleFixture()

	sale, err := uc.PostSale(context.Background(), sales.PostSaleInput{
		ProductID:     "prod-1",
		WarehouseCode: "MMM",
		Quantity:      dec("3"),
	})
	require.NoError(t, err)

	_, err = uc.CancelSale(context.Background(), sale.ID, "", "devolución")
	require.NoError(t, err)

	_, err = uc.CancelSale(context.Background(), sale.ID, "", "devolución")
	require.Error(t, err)
	var invalid *domain.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.SaleStatusCancelled, invalid.Current)

	// El segundo intento no volvió a acreditar.
	assert.True(t, store.StockQty("prod-1", "MMM").Equal(dec("20")))
	assert.Equal(t, 2, store.MovementCount())
}

func TestCancelSale_VentaInexistente(t *testing.T) {
	_, uc := newSaleFixture()

	_, err := uc.CancelSale(context.Background(), "no-existe", "", "devolución")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
