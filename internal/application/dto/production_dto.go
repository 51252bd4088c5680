package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para planear un lote.
type CreateBatchRequest struct {
	RecipeID        string          `json:"recipe_id" validate:"required"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	Notes           string          `json:"notes"`
}

// PackagingLineRequest una línea del desglose de empaques.
type PackagingLineRequest struct {
	PackagingTypeID string `json:"packaging_type_id" validate:"required"`
	Count           int64  `json:"count"`
}

// CompleteBatchRequest body para completar un lote.
type CompleteBatchRequest struct {
	WarehouseCode    string                 `json:"warehouse_code" validate:"required"`
	ProducedQuantity decimal.Decimal        `json:"produced_quantity"`
	Breakdown        []PackagingLineRequest `json:"breakdown"`
}

// BatchPackagingResponse una línea del desglose en la respuesta.
type BatchPackagingResponse struct {
	PackagingTypeID string          `json:"packaging_type_id"`
	Count           int64           `json:"count"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// BatchResponse salida de un lote. Los costos se redondean a centavos solo
// aquí, para presentación; los valores almacenados conservan la precisión.
type BatchResponse struct {
	ID               string                   `json:"id"`
	RecipeID         string                   `json:"recipe_id"`
	PlannedQuantity  decimal.Decimal          `json:"planned_quantity"`
	ProducedQuantity decimal.Decimal          `json:"produced_quantity"`
	TotalCost        decimal.Decimal          `json:"total_cost"`
	UnitCost         decimal.Decimal          `json:"unit_cost"`
	State            string                   `json:"state"`
	WarehouseCode    string                   `json:"warehouse_code,omitempty"`
	Notes            string                   `json:"notes,omitempty"`
	Packaging        []BatchPackagingResponse `json:"packaging,omitempty"`
	CreatedBy        string                   `json:"created_by,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	CompletedAt      *time.Time               `json:"completed_at,omitempty"`
}

// BatchListResponse lista paginada de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
