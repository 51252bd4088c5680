package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial representa una materia prima consumida por producción.
// CurrentStock es conceptualmente un StockRecord en el espacio implícito de
// materiales: lo debitan los lotes completados y lo acreditan los reabastos
// manuales, siempre vía el ajustador de stock.
type RawMaterial struct {
	ID           string
	Name         string
	Unit         string // unidad de medida: "kg", "lt", "und"
	CostPerUnit  decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal // informativo
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
