package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// PostSaleUseCase registra una venta POS debitando el stock del producto en la
// misma transacción que inserta la venta. Si el débito falla por insuficiencia
// la venta nunca existe y el caller recibe disponible/solicitado para el
// mensaje al cajero.
type PostSaleUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	saleRepo      repository.SaleRepository
}

// NewPostSaleUseCase construye el caso de uso.
func NewPostSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	saleRepo repository.SaleRepository,
) *PostSaleUseCase {
	return &PostSaleUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		saleRepo:      saleRepo,
	}
}

// PostSaleInput entrada para registrar una venta.
type PostSaleInput struct {
	ProductID     string
	WarehouseCode string
	Quantity      decimal.Decimal // positiva
	UnitPrice     *decimal.Decimal // nil = precio de lista del producto
	CustomerName  string
	PaymentMethod string
	ActorID       string
}

// PostSale valida referencias y ejecuta débito + inserción como unidad atómica.
func (uc *PostSaleUseCase) PostSale(ctx context.Context, in PostSaleInput) (*entity.Sale, error) {
	if in.ProductID == "" || in.WarehouseCode == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrInvalidProduct
	}
	warehouse, err := uc.warehouseRepo.GetByCode(in.WarehouseCode)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || !warehouse.Active {
		return nil, domain.ErrInvalidWarehouse
	}

	unitPrice := product.Price
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = *in.UnitPrice
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		WarehouseCode: in.WarehouseCode,
		Quantity:      in.Quantity,
		UnitPrice:     unitPrice,
		Total:         in.Quantity.Mul(unitPrice),
		CustomerName:  in.CustomerName,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleStatusCompleted,
		CreatedBy:     in.ActorID,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		saleRepo repository.SaleRepository,
	) error {
		entry, err := inventory.ApplyProductDelta(movRepo, stockRepo, inventory.DeltaInput{
			ProductID:     in.ProductID,
			WarehouseCode: in.WarehouseCode,
			Delta:         in.Quantity.Neg(),
			Kind:          entity.MovementKindSale,
			Reason:        "venta POS",
			ActorID:       in.ActorID,
			ReferenceID:   sale.ID,
			ReferenceKind: entity.ReferenceKindSale,
			Now:           now,
		})
		if err != nil {
			return err
		}
		sale.MovementID = entry.ID
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CancelSale anula una venta completada reacreditando el stock con un
// movimiento nuevo (kind=adjustment) que referencia la venta. El movimiento
// original del débito jamás se modifica ni se borra.
func (uc *PostSaleUseCase) CancelSale(ctx context.Context, saleID, actorID, reason string) (*entity.Sale, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	var cancelled *entity.Sale
	now := time.Now()
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleStatusCompleted {
			return &domain.InvalidStateError{Entity: "venta", Current: sale.Status}
		}
		if _, err := inventory.ApplyProductDelta(movRepo, stockRepo, inventory.DeltaInput{
			ProductID:     sale.ProductID,
			WarehouseCode: sale.WarehouseCode,
			Delta:         sale.Quantity,
			Kind:          entity.MovementKindAdjustment,
			Reason:        reason,
			ActorID:       actorID,
			ReferenceID:   sale.ID,
			ReferenceKind: entity.ReferenceKindSale,
			Now:           now,
		}); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusCancelled
		sale.CancelledAt = &now
		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		cancelled = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// GetByID obtiene una venta.
func (uc *PostSaleUseCase) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// List lista ventas con paginación.
func (uc *PostSaleUseCase) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.saleRepo.List(limit, offset)
}
