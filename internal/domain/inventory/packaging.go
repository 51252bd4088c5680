package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
)

// PackagedQuantity convierte un número de empaques a cantidad de producto
// terminado usando el equivalente canónico del tipo de empaque.
func PackagedQuantity(pt *entity.PackagingType, count int64) decimal.Decimal {
	return pt.UnitEquivalent.Mul(decimal.NewFromInt(count))
}
