package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// Sale representa una venta POS de un producto desde una bodega. La fila solo
// existe si el débito de stock ocurrió: ambos se escriben en la misma
// transacción. Al anular, el stock se reacredita con un movimiento nuevo que
// referencia la venta; el movimiento original jamás se toca.
type Sale struct {
	ID            string
	ProductID     string
	WarehouseCode string
	Quantity      decimal.Decimal // positiva
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
	CustomerName  string
	PaymentMethod string // "efectivo", "tarjeta", "transferencia"
	Status        string
	MovementID    string // movimiento de salida que respaldó la venta
	CreatedBy     string
	CreatedAt     time.Time
	CancelledAt   *time.Time
}
