package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest entrada para crear una materia prima.
type CreateRawMaterialRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Unit        string           `json:"unit" validate:"required"`
	CostPerUnit decimal.Decimal  `json:"cost_per_unit"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
}

// UpdateRawMaterialRequest entrada para actualizar una materia prima.
// El stock no se toca por aquí: usar el reabasto.
type UpdateRawMaterialRequest struct {
	Name        *string          `json:"name,omitempty"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit,omitempty"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// RestockRequest body para el reabasto manual (delta con signo).
type RestockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason"`
}

// RawMaterialResponse salida de una materia prima.
type RawMaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RawMaterialListResponse lista paginada de materias primas.
type RawMaterialListResponse struct {
	Items []RawMaterialResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
