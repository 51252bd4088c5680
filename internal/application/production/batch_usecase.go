package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// BatchUseCase ciclo de vida de lotes fuera de la completación:
// planned -> in_process -> cancelled. Ninguna de estas transiciones toca stock.
type BatchUseCase struct {
	batchRepo  repository.ProductionBatchRepository
	recipeRepo repository.RecipeRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(batchRepo repository.ProductionBatchRepository, recipeRepo repository.RecipeRepository) *BatchUseCase {
	return &BatchUseCase{batchRepo: batchRepo, recipeRepo: recipeRepo}
}

// CreateBatchInput entrada para planear un lote.
type CreateBatchInput struct {
	RecipeID        string
	PlannedQuantity decimal.Decimal
	Notes           string
	ActorID         string
}

// Create planea un lote nuevo contra una receta activa.
func (uc *BatchUseCase) Create(_ context.Context, in CreateBatchInput) (*entity.ProductionBatch, error) {
	if in.RecipeID == "" || !in.PlannedQuantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := uc.recipeRepo.GetByID(in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil || !recipe.Active {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	batch := &entity.ProductionBatch{
		ID:              uuid.New().String(),
		RecipeID:        in.RecipeID,
		PlannedQuantity: in.PlannedQuantity,
		State:           entity.BatchStatePlanned,
		Notes:           in.Notes,
		CreatedBy:       in.ActorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Start pasa un lote de planned a in_process.
func (uc *BatchUseCase) Start(_ context.Context, batchID string) (*entity.ProductionBatch, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.State != entity.BatchStatePlanned {
		return nil, &domain.InvalidStateError{Entity: "lote", Current: batch.State}
	}
	batch.State = entity.BatchStateInProcess
	batch.UpdatedAt = time.Now()
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Cancel cancela un lote aún no completado. Nunca toca el ledger.
func (uc *BatchUseCase) Cancel(_ context.Context, batchID string) (*entity.ProductionBatch, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if !batch.CanComplete() {
		return nil, &domain.InvalidStateError{Entity: "lote", Current: batch.State}
	}
	batch.State = entity.BatchStateCancelled
	batch.UpdatedAt = time.Now()
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetByID obtiene un lote con su desglose de empaques.
func (uc *BatchUseCase) GetByID(_ context.Context, batchID string) (*entity.ProductionBatch, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// List lista lotes con paginación.
func (uc *BatchUseCase) List(_ context.Context, limit, offset int) ([]*entity.ProductionBatch, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.batchRepo.List(limit, offset)
}
