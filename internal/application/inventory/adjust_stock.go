package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// AdjustStockUseCase aplica un delta manual con signo a un par
// (producto, bodega): entrada de mercancía, merma, corrección de conteo.
type AdjustStockUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// AdjustInput entrada para un ajuste manual de stock.
type AdjustInput struct {
	ProductID     string
	WarehouseCode string
	Delta         decimal.Decimal // con signo, distinto de cero
	Reason        string
	ActorID       string
}

// Adjust valida referencias fuera de la transacción y aplica el delta dentro
// de una: bloqueo de fila, invariante de no-negatividad, una fila del ledger.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.MovementEntry, error) {
	if in.Delta.IsZero() || in.ProductID == "" || in.WarehouseCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(in.ProductID, in.WarehouseCode); err != nil {
		return nil, err
	}

	now := time.Now()
	var entry *entity.MovementEntry
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		_ repository.TransferRepository,
	) error {
		var err error
		entry, err = ApplyProductDelta(movRepo, stockRepo, DeltaInput{
			ProductID:     in.ProductID,
			WarehouseCode: in.WarehouseCode,
			Delta:         in.Delta,
			Kind:          entity.MovementKindAdjustment,
			Reason:        in.Reason,
			ActorID:       in.ActorID,
			Now:           now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// checkRefs valida que el producto exista y la bodega exista y esté activa.
func (uc *AdjustStockUseCase) checkRefs(productID, warehouseCode string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrInvalidProduct
	}
	warehouse, err := uc.warehouseRepo.GetByCode(warehouseCode)
	if err != nil {
		return err
	}
	if warehouse == nil || !warehouse.Active {
		return domain.ErrInvalidWarehouse
	}
	return nil
}
