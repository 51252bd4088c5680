package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado vendible. El stock por bodega vive en
// StockRecord; MinStock/MaxStock son informativos, el ledger nunca los aplica.
type Product struct {
	ID        string
	Name      string
	Unit      string // unidad de medida: "und", "kg", "lt"
	Price     decimal.Decimal
	MinStock  decimal.Decimal
	MaxStock  decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
