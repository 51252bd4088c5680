package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe define cuánto produce una corrida de producción (YieldQuantity del
// producto de salida) y qué materias primas consume. Solo se usa para calcular
// los débitos de un lote y su costo por unidad.
type Recipe struct {
	ID            string
	Name          string
	ProductID     string          // producto terminado que produce
	YieldQuantity decimal.Decimal // unidades a granel por corrida
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Ingredients   []RecipeIngredient
}

// RecipeIngredient cantidad de una materia prima consumida por corrida completa
// (por YieldQuantity de la receta).
type RecipeIngredient struct {
	ID            string
	RecipeID      string
	RawMaterialID string
	Quantity      decimal.Decimal
}
