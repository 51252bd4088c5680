package production

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	domaininv "github.com/dcastano/pos-inventario-api/internal/domain/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// CompleteBatchUseCase completa un lote como una sola unidad atómica:
// N débitos de materia prima (según receta) y M créditos de producto terminado
// (según desglose de empaques), más el costeo ponderado. Cualquier fallo en
// cualquier paso revierte todo: nunca queda consumo parcial de ingredientes.
type CompleteBatchUseCase struct {
	txRunner      TxRunner
	batchRepo     repository.ProductionBatchRepository
	recipeRepo    repository.RecipeRepository
	packagingRepo repository.PackagingTypeRepository
	warehouseRepo repository.WarehouseRepository
}

// NewCompleteBatchUseCase construye el caso de uso.
func NewCompleteBatchUseCase(
	txRunner TxRunner,
	batchRepo repository.ProductionBatchRepository,
	recipeRepo repository.RecipeRepository,
	packagingRepo repository.PackagingTypeRepository,
	warehouseRepo repository.WarehouseRepository,
) *CompleteBatchUseCase {
	return &CompleteBatchUseCase{
		txRunner:      txRunner,
		batchRepo:     batchRepo,
		recipeRepo:    recipeRepo,
		packagingRepo: packagingRepo,
		warehouseRepo: warehouseRepo,
	}
}

// PackagingLine una línea del desglose de empaques al completar.
type PackagingLine struct {
	PackagingTypeID string
	Count           int64
}

// CompleteBatchInput entrada para completar un lote.
type CompleteBatchInput struct {
	BatchID          string
	WarehouseCode    string // bodega destino del producto terminado
	ProducedQuantity decimal.Decimal
	Breakdown        []PackagingLine
	ActorID          string
}

// Complete ejecuta la completación. Precondición: estado planned o in_process;
// completar dos veces falla con estado inválido en lugar de aplicar doble.
func (uc *CompleteBatchUseCase) Complete(ctx context.Context, in CompleteBatchInput) (*entity.ProductionBatch, error) {
	if in.BatchID == "" || in.WarehouseCode == "" || len(in.Breakdown) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.ProducedQuantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Breakdown {
		if line.Count <= 0 || line.PackagingTypeID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validaciones referenciales fuera de la transacción (lecturas baratas).
	batch, err := uc.batchRepo.GetByID(in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if !batch.CanComplete() {
		return nil, &domain.InvalidStateError{Entity: "lote", Current: batch.State}
	}
	warehouse, err := uc.warehouseRepo.GetByCode(in.WarehouseCode)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || !warehouse.Active {
		return nil, domain.ErrInvalidWarehouse
	}
	recipe, err := uc.recipeRepo.GetByID(batch.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	packagings := make(map[string]*entity.PackagingType, len(in.Breakdown))
	for _, line := range in.Breakdown {
		pt, err := uc.packagingRepo.GetByID(line.PackagingTypeID)
		if err != nil {
			return nil, err
		}
		if pt == nil || !pt.Active {
			return nil, domain.ErrNotFound
		}
		packagings[line.PackagingTypeID] = pt
	}

	now := time.Now()
	err = uc.txRunner.RunProduction(ctx, func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		materialRepo repository.RawMaterialRepository,
		batchRepo repository.ProductionBatchRepository,
	) error {
		// Re-chequear el estado con la fila bloqueada: dos completaciones
		// concurrentes del mismo lote serializan aquí y la segunda falla.
		locked, err := batchRepo.GetForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if !locked.CanComplete() {
			return &domain.InvalidStateError{Entity: "lote", Current: locked.State}
		}
		batch = locked

		// Costos unitarios vigentes de las materias primas, con sus filas
		// bloqueadas en orden determinista (id ordenado) para evitar deadlocks
		// entre lotes que comparten ingredientes.
		ids := make([]string, 0, len(recipe.Ingredients))
		for _, ing := range recipe.Ingredients {
			ids = append(ids, ing.RawMaterialID)
		}
		sort.Strings(ids)
		costs := make(map[string]decimal.Decimal, len(ids))
		for _, id := range ids {
			material, err := materialRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			costs[id] = material.CostPerUnit
		}

		// Débito de cada ingrediente escalado; cualquier insuficiencia aborta
		// toda la completación.
		reqs := domaininv.ScaleIngredients(recipe, in.ProducedQuantity, costs)
		if len(reqs) == 0 {
			return domain.ErrInvalidInput
		}
		sort.Slice(reqs, func(i, j int) bool { return reqs[i].RawMaterialID < reqs[j].RawMaterialID })
		for _, req := range reqs {
			if _, err := inventory.ApplyMaterialDelta(movRepo, materialRepo, inventory.MaterialDeltaInput{
				RawMaterialID: req.RawMaterialID,
				Delta:         req.Quantity.Neg(),
				Kind:          entity.MovementKindProduction,
				Reason:        "consumo de producción",
				ActorID:       in.ActorID,
				ReferenceID:   batch.ID,
				ReferenceKind: entity.ReferenceKindBatch,
				Now:           now,
			}); err != nil {
				return err
			}
		}

		totalCost, unitCost := domaininv.BatchCost(reqs, in.ProducedQuantity)

		// Crédito del producto terminado por cada línea de empaque. Un crédito
		// no puede fallar por insuficiencia, solo por errores de persistencia.
		lines := make([]entity.BatchPackaging, 0, len(in.Breakdown))
		for _, line := range in.Breakdown {
			qty := domaininv.PackagedQuantity(packagings[line.PackagingTypeID], line.Count)
			if !qty.IsPositive() {
				return domain.ErrInvalidInput
			}
			if _, err := inventory.ApplyProductDelta(movRepo, stockRepo, inventory.DeltaInput{
				ProductID:     recipe.ProductID,
				WarehouseCode: in.WarehouseCode,
				Delta:         qty,
				Kind:          entity.MovementKindProduction,
				Reason:        "producto terminado de lote",
				ActorID:       in.ActorID,
				ReferenceID:   batch.ID,
				ReferenceKind: entity.ReferenceKindBatch,
				Now:           now,
			}); err != nil {
				return err
			}
			lines = append(lines, entity.BatchPackaging{
				BatchID:         batch.ID,
				PackagingTypeID: line.PackagingTypeID,
				Count:           line.Count,
				Quantity:        qty,
			})
		}

		batch.State = entity.BatchStateCompleted
		batch.ProducedQuantity = in.ProducedQuantity
		batch.TotalCost = totalCost
		batch.UnitCost = unitCost
		batch.WarehouseCode = in.WarehouseCode
		batch.Packaging = lines
		batch.UpdatedAt = now
		batch.CompletedAt = &now
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		return batchRepo.CreatePackaging(lines)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
