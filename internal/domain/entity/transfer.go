package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado. No existe "pending": la operación es atómica,
// el traslado se escribe ya resuelto.
const (
	TransferStatusCompleted = "completed"
	TransferStatusFailed    = "failed"
)

// Transfer representa un traslado de stock entre dos bodegas: un débito en
// origen y un crédito en destino, enlazados a sus dos filas del ledger.
// Inmutable una vez escrito.
type Transfer struct {
	ID            string
	ProductID     string
	Quantity      decimal.Decimal // siempre positiva
	FromWarehouse string
	ToWarehouse   string
	Reason        string
	Status        string
	OutMovementID string // movimiento de salida en origen
	InMovementID  string // movimiento de entrada en destino
	CreatedBy     string
	CreatedAt     time.Time
}
