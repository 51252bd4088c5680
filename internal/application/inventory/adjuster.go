package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// Este archivo es el único camino de escritura del stock. Ventas, traslados,
// lotes y ajustes manuales pasan todos por ApplyProductDelta o
// ApplyMaterialDelta dentro de la transacción de su operación: bloqueo de
// fila, invariante de no-negatividad y una fila del ledger por cada delta.

// DeltaInput parámetros para aplicar un delta con signo a un par
// (producto, bodega).
type DeltaInput struct {
	ProductID     string
	WarehouseCode string
	Delta         decimal.Decimal // con signo, distinto de cero
	Kind          string          // entity.MovementKind*
	Reason        string
	ActorID       string
	ReferenceID   string
	ReferenceKind string
	Now           time.Time
}

// MaterialDeltaInput parámetros para aplicar un delta a una materia prima
// (espacio implícito de materiales, sin bodega).
type MaterialDeltaInput struct {
	RawMaterialID string
	Delta         decimal.Decimal
	Kind          string
	Reason        string
	ActorID       string
	ReferenceID   string
	ReferenceKind string
	Now           time.Time
}

// ApplyProductDelta bloquea la fila de stock (creándola en cero si el par nunca
// tuvo stock), valida que before+delta no sea negativo, persiste la nueva
// cantidad y agrega exactamente una fila al ledger. Si before+delta < 0
// retorna InsufficientStockError con disponible y solicitado; el caller aborta
// la transacción y nada queda escrito.
func ApplyProductDelta(
	movRepo repository.MovementEntryRepository,
	stockRepo repository.StockRecordRepository,
	in DeltaInput,
) (*entity.MovementEntry, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	record, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseCode)
	if err != nil {
		return nil, err
	}
	before := record.Quantity
	after := before.Add(in.Delta)
	if after.IsNegative() {
		return nil, &domain.InsufficientStockError{
			Available: before,
			Requested: in.Delta.Neg(),
		}
	}
	record.Quantity = after
	record.UpdatedAt = in.Now
	if err := stockRepo.Upsert(record); err != nil {
		return nil, err
	}
	entry := &entity.MovementEntry{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		WarehouseCode:  in.WarehouseCode,
		Kind:           in.Kind,
		QuantityBefore: before,
		QuantityDelta:  in.Delta,
		QuantityAfter:  after,
		Reason:         in.Reason,
		ReferenceID:    in.ReferenceID,
		ReferenceKind:  in.ReferenceKind,
		CreatedBy:      in.ActorID,
		CreatedAt:      in.Now,
	}
	if err := movRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplyMaterialDelta es el equivalente para materias primas: misma invariante,
// mismo ledger, la fila queda referenciada por raw_material_id y sin bodega.
func ApplyMaterialDelta(
	movRepo repository.MovementEntryRepository,
	materialRepo repository.RawMaterialRepository,
	in MaterialDeltaInput,
) (*entity.MovementEntry, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	material, err := materialRepo.GetForUpdate(in.RawMaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	before := material.CurrentStock
	after := before.Add(in.Delta)
	if after.IsNegative() {
		return nil, &domain.InsufficientStockError{
			Available: before,
			Requested: in.Delta.Neg(),
		}
	}
	material.CurrentStock = after
	material.UpdatedAt = in.Now
	if err := materialRepo.Update(material); err != nil {
		return nil, err
	}
	entry := &entity.MovementEntry{
		ID:             uuid.New().String(),
		RawMaterialID:  in.RawMaterialID,
		Kind:           in.Kind,
		QuantityBefore: before,
		QuantityDelta:  in.Delta,
		QuantityAfter:  after,
		Reason:         in.Reason,
		ReferenceID:    in.ReferenceID,
		ReferenceKind:  in.ReferenceKind,
		CreatedBy:      in.ActorID,
		CreatedAt:      in.Now,
	}
	if err := movRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
