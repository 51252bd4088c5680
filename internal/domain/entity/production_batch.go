package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de producción. Solo planned/in_process -> completed toca
// el ledger; cancelled nunca afecta stock.
const (
	BatchStatePlanned   = "planned"
	BatchStateInProcess = "in_process"
	BatchStateCompleted = "completed"
	BatchStateCancelled = "cancelled"
)

// ProductionBatch representa una corrida de producción: consume materias primas
// según la receta y acredita producto terminado empacado.
type ProductionBatch struct {
	ID              string
	RecipeID        string
	PlannedQuantity decimal.Decimal
	// ProducedQuantity cantidad a granel real producida, se fija al completar.
	ProducedQuantity decimal.Decimal
	TotalCost        decimal.Decimal // suma de materias primas consumidas, precisión completa
	UnitCost         decimal.Decimal // TotalCost / ProducedQuantity, precisión completa
	State            string
	WarehouseCode    string // bodega destino del producto terminado, se fija al completar
	Notes            string
	Packaging        []BatchPackaging
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time
}

// BatchPackaging registra cuántas unidades de cada empaque consumió el lote al
// completarse, y la cantidad de producto terminado resultante de la conversión.
type BatchPackaging struct {
	ID              string
	BatchID         string
	PackagingTypeID string
	Count           int64
	Quantity        decimal.Decimal // Count * factor del empaque
}

// CanComplete indica si el estado actual permite completar el lote.
func (b *ProductionBatch) CanComplete() bool {
	return b.State == BatchStatePlanned || b.State == BatchStateInProcess
}
