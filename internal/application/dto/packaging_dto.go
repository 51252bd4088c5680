package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePackagingRequest entrada para crear un tipo de empaque.
type CreatePackagingRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	UnitEquivalent decimal.Decimal `json:"unit_equivalent"` // unidades canónicas por empaque
}

// UpdatePackagingRequest entrada para actualizar un tipo de empaque.
type UpdatePackagingRequest struct {
	Name           *string          `json:"name,omitempty"`
	UnitEquivalent *decimal.Decimal `json:"unit_equivalent,omitempty"`
	Active         *bool            `json:"active,omitempty"`
}

// PackagingResponse salida de un tipo de empaque.
type PackagingResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	UnitEquivalent decimal.Decimal `json:"unit_equivalent"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PackagingListResponse lista paginada de tipos de empaque.
type PackagingListResponse struct {
	Items []PackagingResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
