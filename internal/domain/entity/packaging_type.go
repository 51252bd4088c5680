package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackagingType es un factor de conversión: cuántas unidades canónicas del
// producto a granel contiene un empaque (bolsa, bulto, caja).
type PackagingType struct {
	ID             string
	Name           string
	UnitEquivalent decimal.Decimal // unidades canónicas por empaque
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
