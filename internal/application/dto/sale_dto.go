package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostSaleRequest body para POST /api/sales.
type PostSaleRequest struct {
	ProductID     string           `json:"product_id" validate:"required"`
	WarehouseCode string           `json:"warehouse_code" validate:"required"`
	Quantity      decimal.Decimal  `json:"quantity"` // positiva
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	CustomerName  string           `json:"customer_name,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
}

// CancelSaleRequest body para anular una venta.
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	WarehouseCode string          `json:"warehouse_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	CustomerName  string          `json:"customer_name,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	MovementID    string          `json:"movement_id"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
