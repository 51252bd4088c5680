package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest body para POST /api/transfers.
type TransferRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"` // positiva
	FromWarehouse string          `json:"from_warehouse" validate:"required"`
	ToWarehouse   string          `json:"to_warehouse" validate:"required"`
	Reason        string          `json:"reason"`
}

// TransferResponse salida de un traslado con sus dos movimientos enlazados.
type TransferResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	FromWarehouse string          `json:"from_warehouse"`
	ToWarehouse   string          `json:"to_warehouse"`
	Reason        string          `json:"reason,omitempty"`
	Status        string          `json:"status"`
	OutMovementID string          `json:"out_movement_id"`
	InMovementID  string          `json:"in_movement_id"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
