package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa la cantidad actual de un producto en una bodega.
// Identidad compuesta (ProductID, WarehouseCode); exactamente una fila por par.
// Quantity nunca es negativa: el invariante se valida en la transacción antes
// del commit y además con un CHECK en la tabla. Solo el ajustador de stock
// escribe este registro.
type StockRecord struct {
	ProductID     string
	WarehouseCode string
	Quantity      decimal.Decimal
	MinQuantity   decimal.Decimal // informativo
	MaxQuantity   decimal.Decimal // informativo
	UpdatedAt     time.Time
}

// LowStock indica si la cantidad está por debajo del mínimo declarado (solo lectura).
func (s *StockRecord) LowStock() bool {
	return s.MinQuantity.IsPositive() && s.Quantity.LessThan(s.MinQuantity)
}

// OutOfStock indica si la cantidad es cero.
func (s *StockRecord) OutOfStock() bool {
	return s.Quantity.IsZero()
}
