package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// PackagingUseCase casos de uso CRUD para tipos de empaque.
type PackagingUseCase struct {
	repo repository.PackagingTypeRepository
}

// NewPackagingUseCase construye el caso de uso.
func NewPackagingUseCase(repo repository.PackagingTypeRepository) *PackagingUseCase {
	return &PackagingUseCase{repo: repo}
}

// Create crea un tipo de empaque con su factor de conversión canónico.
func (uc *PackagingUseCase) Create(in dto.CreatePackagingRequest) (*dto.PackagingResponse, error) {
	if in.Name == "" || !in.UnitEquivalent.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	packaging := &entity.PackagingType{
		ID:             uuid.New().String(),
		Name:           in.Name,
		UnitEquivalent: in.UnitEquivalent,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(packaging); err != nil {
		return nil, err
	}
	return toPackagingResponse(packaging), nil
}

// GetByID obtiene un tipo de empaque.
func (uc *PackagingUseCase) GetByID(id string) (*dto.PackagingResponse, error) {
	packaging, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if packaging == nil {
		return nil, nil
	}
	return toPackagingResponse(packaging), nil
}

// Update actualiza nombre, factor o estado activo.
func (uc *PackagingUseCase) Update(id string, in dto.UpdatePackagingRequest) (*dto.PackagingResponse, error) {
	packaging, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if packaging == nil {
		return nil, nil
	}
	if in.Name != nil {
		packaging.Name = *in.Name
	}
	if in.UnitEquivalent != nil {
		if !in.UnitEquivalent.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		packaging.UnitEquivalent = *in.UnitEquivalent
	}
	if in.Active != nil {
		packaging.Active = *in.Active
	}
	packaging.UpdatedAt = time.Now()
	if err := uc.repo.Update(packaging); err != nil {
		return nil, err
	}
	return toPackagingResponse(packaging), nil
}

// List lista tipos de empaque con paginación.
func (uc *PackagingUseCase) List(limit, offset int) (*dto.PackagingListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackagingResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPackagingResponse(p))
	}
	return &dto.PackagingListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toPackagingResponse(p *entity.PackagingType) *dto.PackagingResponse {
	if p == nil {
		return nil
	}
	return &dto.PackagingResponse{
		ID:             p.ID,
		Name:           p.Name,
		UnitEquivalent: p.UnitEquivalent,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
