package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// La receta rinde 100 a granel consumiendo 25 kg de harina y 10 lt de agua.
// Al producir 40 (0.4 corridas) los consumos deben escalar proporcionalmente.
func TestScaleIngredients_EscalaProporcional(t *testing.T) {
	recipe := &entity.Recipe{
		YieldQuantity: dec("100"),
		Ingredients: []entity.RecipeIngredient{
			{RawMaterialID: "harina", Quantity: dec("25")},
			{RawMaterialID: "agua", Quantity: dec("10")},
		},
	}
	costs := map[string]decimal.Decimal{
		"harina": dec("3200"),
		"agua":   dec("50"),
	}

	reqs := ScaleIngredients(recipe, dec("40"), costs)
	require.Len(t, reqs, 2)

	assert.True(t, reqs[0].Quantity.Equal(dec("10")), "harina: 25 * 40/100 = 10")
	assert.True(t, reqs[0].Cost.Equal(dec("32000")), "harina: 10 * 3200")
	assert.True(t, reqs[1].Quantity.Equal(dec("4")), "agua: 10 * 40/100 = 4")
	assert.True(t, reqs[1].Cost.Equal(dec("200")), "agua: 4 * 50")
}

// Con rendimiento cero no hay nada que escalar (receta mal configurada).
func TestScaleIngredients_RendimientoCeroRetornaVacio(t *testing.T) {
	recipe := &entity.Recipe{
		YieldQuantity: decimal.Zero,
		Ingredients:   []entity.RecipeIngredient{{RawMaterialID: "x", Quantity: dec("1")}},
	}
	assert.Nil(t, ScaleIngredients(recipe, dec("10"), nil))
}

// El costo total es la suma de los ingredientes y el unitario la división exacta.
func TestBatchCost_TotalYUnitario(t *testing.T) {
	reqs := []IngredientRequirement{
		{Cost: dec("32000")},
		{Cost: dec("200")},
	}
	total, unit := BatchCost(reqs, dec("40"))
	assert.True(t, total.Equal(dec("32200")))
	assert.True(t, unit.Equal(dec("805")), "32200 / 40 = 805")
}

// División que no es exacta: se conserva precisión decimal, sin redondear a centavos.
func TestBatchCost_PrecisionSinRedondeo(t *testing.T) {
	reqs := []IngredientRequirement{{Cost: dec("100")}}
	_, unit := BatchCost(reqs, dec("3"))
	// decimal.Div usa DivisionPrecision (16 por defecto)
	assert.True(t, unit.GreaterThan(dec("33.333333")), "unitario debe conservar decimales")
	assert.True(t, unit.LessThan(dec("33.334")))
}

// Producción cero: total se reporta pero el unitario queda en cero (sin división por cero).
func TestBatchCost_ProduccionCero(t *testing.T) {
	total, unit := BatchCost([]IngredientRequirement{{Cost: dec("10")}}, decimal.Zero)
	assert.True(t, total.Equal(dec("10")))
	assert.True(t, unit.IsZero())
}

// Conversión de empaques: 8 bultos de 50 unidades = 400 unidades de producto.
func TestPackagedQuantity_Conversion(t *testing.T) {
	pt := &entity.PackagingType{UnitEquivalent: dec("50")}
	assert.True(t, PackagedQuantity(pt, 8).Equal(dec("400")))
}
