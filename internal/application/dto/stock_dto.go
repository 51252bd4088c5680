package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjustments.
type AdjustStockRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	WarehouseCode string          `json:"warehouse_code" validate:"required"`
	Delta         decimal.Decimal `json:"delta"` // con signo, distinto de cero
	Reason        string          `json:"reason"`
}

// StockRecordResponse una fila de stock, con banderas informativas calculadas
// en lectura (los umbrales nunca se aplican en escritura).
type StockRecordResponse struct {
	ProductID     string          `json:"product_id"`
	WarehouseCode string          `json:"warehouse_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinQuantity   decimal.Decimal `json:"min_quantity"`
	MaxQuantity   decimal.Decimal `json:"max_quantity"`
	LowStock      bool            `json:"low_stock"`
	OutOfStock    bool            `json:"out_of_stock"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockListResponse lista de stock filtrada.
type StockListResponse struct {
	Items []StockRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// MovementEntryResponse una fila del ledger para la consulta de auditoría.
type MovementEntryResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id,omitempty"`
	RawMaterialID  string          `json:"raw_material_id,omitempty"`
	WarehouseCode  string          `json:"warehouse_code,omitempty"`
	Kind           string          `json:"kind"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityDelta  decimal.Decimal `json:"quantity_delta"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	ReferenceKind  string          `json:"reference_kind,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementEntryResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// InsufficientStockDetails detalle estructurado para el código INSUFFICIENT_STOCK.
type InsufficientStockDetails struct {
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
}
