package entity

import "time"

// Warehouse representa una bodega o punto de venta donde se almacena inventario.
// El código es la identidad estable: stock y movimientos la referencian por Code,
// así crear una bodega nueva es un INSERT y no una migración.
type Warehouse struct {
	Code      string // ej: "AP", "MMM"
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
