package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredientDTO una materia prima y su cantidad por corrida completa.
type RecipeIngredientDTO struct {
	RawMaterialID string          `json:"raw_material_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// CreateRecipeRequest entrada para crear una receta.
type CreateRecipeRequest struct {
	Name          string                `json:"name" validate:"required,min=1,max=200"`
	ProductID     string                `json:"product_id" validate:"required"`
	YieldQuantity decimal.Decimal       `json:"yield_quantity"`
	Ingredients   []RecipeIngredientDTO `json:"ingredients"`
}

// RecipeResponse salida de una receta con ingredientes.
type RecipeResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	ProductID     string                `json:"product_id"`
	YieldQuantity decimal.Decimal       `json:"yield_quantity"`
	Active        bool                  `json:"active"`
	Ingredients   []RecipeIngredientDTO `json:"ingredients"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// RecipeListResponse lista paginada de recetas.
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
