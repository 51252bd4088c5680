package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// TransferUseCase traslada stock entre dos bodegas: débito en origen y crédito
// en destino como una sola unidad atómica, con una fila Transfer que enlaza
// ambos movimientos del ledger.
type TransferUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// TransferInput entrada para un traslado entre bodegas.
type TransferInput struct {
	ProductID     string
	Quantity      decimal.Decimal // positiva
	FromWarehouse string
	ToWarehouse   string
	Reason        string
	ActorID       string
}

// Transfer valida precondiciones baratas antes de tocar la base (mismo destino,
// cantidad no positiva), verifica referencias, y ejecuta ambas patas en una
// transacción. Si cualquier paso falla, el rollback deshace también el débito
// del origen: nunca se observa un traslado a medias.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.Transfer, error) {
	if in.ProductID == "" || in.FromWarehouse == "" || in.ToWarehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouse == in.ToWarehouse || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}
	for _, code := range []string{in.FromWarehouse, in.ToWarehouse} {
		warehouse, err := uc.warehouseRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if warehouse == nil || !warehouse.Active {
			return nil, domain.ErrInvalidWarehouse
		}
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		FromWarehouse: in.FromWarehouse,
		ToWarehouse:   in.ToWarehouse,
		Reason:        in.Reason,
		Status:        entity.TransferStatusCompleted,
		CreatedBy:     in.ActorID,
		CreatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		transferRepo repository.TransferRepository,
	) error {
		// Adquirir ambos locks en orden determinista (código de bodega
		// ordenado) para que dos traslados en sentidos opuestos entre las
		// mismas bodegas no se bloqueen mutuamente.
		codes := []string{in.FromWarehouse, in.ToWarehouse}
		sort.Strings(codes)
		for _, code := range codes {
			if _, err := stockRepo.GetForUpdate(in.ProductID, code); err != nil {
				return err
			}
		}

		outEntry, err := ApplyProductDelta(movRepo, stockRepo, DeltaInput{
			ProductID:     in.ProductID,
			WarehouseCode: in.FromWarehouse,
			Delta:         in.Quantity.Neg(),
			Kind:          entity.MovementKindTransfer,
			Reason:        in.Reason,
			ActorID:       in.ActorID,
			ReferenceID:   transfer.ID,
			ReferenceKind: entity.ReferenceKindTransfer,
			Now:           now,
		})
		if err != nil {
			return err
		}
		// El crédito no puede fallar por insuficiencia, solo por errores
		// referenciales o de persistencia.
		inEntry, err := ApplyProductDelta(movRepo, stockRepo, DeltaInput{
			ProductID:     in.ProductID,
			WarehouseCode: in.ToWarehouse,
			Delta:         in.Quantity,
			Kind:          entity.MovementKindTransfer,
			Reason:        in.Reason,
			ActorID:       in.ActorID,
			ReferenceID:   transfer.ID,
			ReferenceKind: entity.ReferenceKindTransfer,
			Now:           now,
		})
		if err != nil {
			return err
		}
		transfer.OutMovementID = outEntry.ID
		transfer.InMovementID = inEntry.ID
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}
