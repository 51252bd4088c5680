package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
)

// IngredientRequirement cantidad de una materia prima que un lote debe debitar,
// con el costo resultante a precisión completa.
type IngredientRequirement struct {
	RawMaterialID string
	Quantity      decimal.Decimal
	Cost          decimal.Decimal // Quantity * costo unitario de la materia prima
}

// ScaleIngredients calcula el consumo real de cada ingrediente de la receta:
// requerida = cantidadPorCorrida * (producida / rendimientoReceta).
// Toda la aritmética es decimal de punto fijo; nada de float64.
func ScaleIngredients(recipe *entity.Recipe, produced decimal.Decimal, costPerUnit map[string]decimal.Decimal) []IngredientRequirement {
	if recipe.YieldQuantity.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	factor := produced.Div(recipe.YieldQuantity)
	reqs := make([]IngredientRequirement, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		qty := ing.Quantity.Mul(factor)
		reqs = append(reqs, IngredientRequirement{
			RawMaterialID: ing.RawMaterialID,
			Quantity:      qty,
			Cost:          qty.Mul(costPerUnit[ing.RawMaterialID]),
		})
	}
	return reqs
}

// BatchCost suma los costos de los ingredientes y deriva el costo unitario.
// El total y el unitario se guardan a precisión completa; el redondeo a
// centavos es responsabilidad de la capa de presentación.
func BatchCost(reqs []IngredientRequirement, produced decimal.Decimal) (total, unit decimal.Decimal) {
	total = decimal.Zero
	for _, r := range reqs {
		total = total.Add(r.Cost)
	}
	if produced.LessThanOrEqual(decimal.Zero) {
		return total, decimal.Zero
	}
	return total, total.Div(produced)
}
