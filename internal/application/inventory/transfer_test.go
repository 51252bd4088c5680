package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/infrastructure/memory"
)

func newTransferFixture() (*memory.Store, *inventory.TransferUseCase) {
	store := memory.NewStore()
	store.SeedWarehouse("AP", "Bodega Apartadó")
	store.SeedWarehouse("MMM", "Punto de venta MMM")
	store.SeedProduct("prod-1", "Panela pulverizada", dec("4500"))
	uc := inventory.NewTransferUseCase(store, store.Products(), store.Warehouses())
	return store, uc
}

func TestTransfer_DebitaOrigenYAcreditaDestino(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock("prod-1", "AP", dec("100"))

	transfer, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:     "prod-1",
		Quantity:      dec("30"),
		FromWarehouse: "AP",
		ToWarehouse:   "MMM",
		Reason:        "reposición punto de venta",
	})
	require.NoError(t, err)

	assert.True(t, store.StockQty("prod-1", "AP").Equal(dec("70")))
	assert.True(t, store.StockQty("prod-1", "MMM").Equal(dec("30")))
	assert.Equal(t, entity.TransferStatusCompleted, transfer.Status)

	// La fila Transfer enlaza las dos patas del ledger.
	require.NotEmpty(t, transfer.OutMovementID)
	require.NotEmpty(t, transfer.InMovementID)
	assert.NotEqual(t, transfer.OutMovementID, transfer.InMovementID)

	out, err := store.Movements().GetByID(transfer.OutMovementID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "AP", out.WarehouseCode)
	assert.True(t, out.QuantityDelta.Equal(dec("-30")))
	assert.Equal(t, entity.MovementKindTransfer, out.Kind)
	assert.Equal(t, transfer.ID, out.ReferenceID)

	in, err := store.Movements().GetByID(transfer.InMovementID)
	require.NoError(t, err)
	require.NotNil(t, in)
	assert.Equal(t, "MMM", in.WarehouseCode)
	assert.True(t, in.QuantityDelta.Equal(dec("30")))

	assert.Equal(t, 2, store.MovementCount())
}

func TestTransfer_MismaBodegaRechazada(t *testing.T) {
	_, uc := newTransferFixture()

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:     "prod-1",
		Quantity:      dec("5"),
		FromWarehouse: "AP",
		ToWarehouse:   "AP",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_CantidadNoPositivaRechazada(t *testing.T) {
	_, uc := newTransferFixture()

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:     "prod-1",
		Quantity:      dec("-3"),
		FromWarehouse: "AP",
		ToWarehouse:   "MMM",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_InsuficienciaRevierteTodo(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock("prod-1", "AP", dec("10"))

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:     "prod-1",
		Quantity:      dec("25"),
		FromWarehouse: "AP",
		ToWarehouse:   "MMM",
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(dec("10")))
	assert.True(t, insufficient.Requested.Equal(dec("25")))

	assert.True(t, store.StockQty("prod-1", "AP").Equal(dec("10")))
	assert.True(t, store.StockQty("prod-1", "MMM").IsZero())
	assert.Equal(t, 0, store.MovementCount())

	transfers, err := store.Transfers().List(0, 0)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

// Si la pata de crédito falla por persistencia, el débito ya aplicado en el
// origen también debe revertirse: jamás se observa un traslado a medias.
func TestTransfer_FalloEnSegundaPataRevierteDebito(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock("prod-1", "AP", dec("100"))

	boom := errors.New("fallo de persistencia simulado")
	store.MovementCreateErr = func(entry *entity.MovementEntry) error {
		if entry.WarehouseCode == "MMM" {
			return boom
		}
		return nil
	}

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:     "prod-1",
		Quantity:      dec("30"),
		FromWarehouse: "AP",
		ToWarehouse:   "MMM",
	})
	require.ErrorIs(t, err, boom)

	assert.True(t, store.StockQty("prod-1", "AP").Equal(dec("100")))
	assert.True(t, store.StockQty("prod-1", "MMM").IsZero())
	assert.Equal(t, 0, store.MovementCount())
}

// Traslados concurrentes sobre el mismo origen: con 50 disponibles y diez
// intentos de 10 cada uno, exactamente cinco deben completarse y el resto
// fallar por insuficiencia. Nunca stock negativo.
func TestTransfer_ConcurrentesSoloHastaAgotarStock(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock("prod-1", "AP", dec("50"))

	const attempts = 10
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Transfer(context.Background(), inventory.TransferInput{
				ProductID:     "prod-1",
				Quantity:      dec("10"),
				FromWarehouse: "AP",
				ToWarehouse:   "MMM",
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 5, ok)
	assert.Equal(t, 5, insufficient)
	assert.True(t, store.StockQty("prod-1", "AP").IsZero())
	assert.True(t, store.StockQty("prod-1", "MMM").Equal(dec("50")))
	assert.Equal(t, 10, store.MovementCount())
}
