package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Unit     string           `json:"unit" validate:"required"`
	Price    decimal.Decimal  `json:"price"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock *decimal.Decimal `json:"max_stock,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock *decimal.Decimal `json:"max_stock,omitempty"`
	Active   *bool            `json:"active,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	MinStock  decimal.Decimal `json:"min_stock"`
	MaxStock  decimal.Decimal `json:"max_stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
