package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// RawMaterialUseCase CRUD de materias primas más el reabasto manual, que sí
// toca el ledger (vía el ajustador, en transacción).
type RawMaterialUseCase struct {
	repo     repository.RawMaterialRepository
	txRunner MaterialTxRunner
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(repo repository.RawMaterialRepository, txRunner MaterialTxRunner) *RawMaterialUseCase {
	return &RawMaterialUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una materia prima nueva con stock inicial cero.
func (uc *RawMaterialUseCase) Create(in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	now := time.Now()
	material := &entity.RawMaterial{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Unit:         in.Unit,
		CostPerUnit:  in.CostPerUnit,
		CurrentStock: decimal.Zero,
		MinStock:     orZero(in.MinStock),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *RawMaterialUseCase) GetByID(id string) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toRawMaterialResponse(material), nil
}

// Update actualiza nombre, costo unitario, mínimos o estado activo.
// El stock NO se toca por aquí: eso es Restock o producción.
func (uc *RawMaterialUseCase) Update(id string, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.CostPerUnit != nil {
		material.CostPerUnit = *in.CostPerUnit
	}
	if in.MinStock != nil {
		material.MinStock = *in.MinStock
	}
	if in.Active != nil {
		material.Active = *in.Active
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(material), nil
}

// Restock aplica un delta manual al stock de la materia prima (reabasto
// positivo o corrección negativa) dejando su fila en el ledger.
func (uc *RawMaterialUseCase) Restock(ctx context.Context, id string, delta decimal.Decimal, reason, actorID string) (*entity.MovementEntry, error) {
	if delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var entry *entity.MovementEntry
	now := time.Now()
	err := uc.txRunner.RunMaterial(ctx, func(
		movRepo repository.MovementEntryRepository,
		materialRepo repository.RawMaterialRepository,
	) error {
		var err error
		entry, err = inventory.ApplyMaterialDelta(movRepo, materialRepo, inventory.MaterialDeltaInput{
			RawMaterialID: id,
			Delta:         delta,
			Kind:          entity.MovementKindAdjustment,
			Reason:        reason,
			ActorID:       actorID,
			Now:           now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List lista materias primas con paginación.
func (uc *RawMaterialUseCase) List(limit, offset int) (*dto.RawMaterialListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toRawMaterialResponse(m))
	}
	return &dto.RawMaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.RawMaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Unit:         m.Unit,
		CostPerUnit:  m.CostPerUnit,
		CurrentStock: m.CurrentStock,
		MinStock:     m.MinStock,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
