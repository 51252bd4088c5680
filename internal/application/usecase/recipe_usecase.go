package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// RecipeUseCase casos de uso para recetas y sus ingredientes.
type RecipeUseCase struct {
	repo         repository.RecipeRepository
	productRepo  repository.ProductRepository
	materialRepo repository.RawMaterialRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	repo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.RawMaterialRepository,
) *RecipeUseCase {
	return &RecipeUseCase{repo: repo, productRepo: productRepo, materialRepo: materialRepo}
}

// Create crea una receta con sus ingredientes, validando referencias.
func (uc *RecipeUseCase) Create(in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.Name == "" || in.ProductID == "" || !in.YieldQuantity.IsPositive() || len(in.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}
	now := time.Now()
	recipe := &entity.Recipe{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ProductID:     in.ProductID,
		YieldQuantity: in.YieldQuantity,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, ing := range in.Ingredients {
		if !ing.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		material, err := uc.materialRepo.GetByID(ing.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil || !material.Active {
			return nil, domain.ErrNotFound
		}
		recipe.Ingredients = append(recipe.Ingredients, entity.RecipeIngredient{
			ID:            uuid.New().String(),
			RecipeID:      recipe.ID,
			RawMaterialID: ing.RawMaterialID,
			Quantity:      ing.Quantity,
		})
	}
	if err := uc.repo.Create(recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// GetByID obtiene una receta con ingredientes.
func (uc *RecipeUseCase) GetByID(id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, nil
	}
	return toRecipeResponse(recipe), nil
}

// List lista recetas con paginación.
func (uc *RecipeUseCase) List(limit, offset int) (*dto.RecipeListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRecipeResponse(r))
	}
	return &dto.RecipeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	if r == nil {
		return nil
	}
	out := &dto.RecipeResponse{
		ID:            r.ID,
		Name:          r.Name,
		ProductID:     r.ProductID,
		YieldQuantity: r.YieldQuantity,
		Active:        r.Active,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, ing := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, dto.RecipeIngredientDTO{
			RawMaterialID: ing.RawMaterialID,
			Quantity:      ing.Quantity,
		})
	}
	return out
}
