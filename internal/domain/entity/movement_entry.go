package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MovementKindSale       = "sale"       // venta POS
	MovementKindProduction = "production" // consumo/producción de lote
	MovementKindTransfer   = "transfer"   // traslado entre bodegas
	MovementKindAdjustment = "adjustment" // ajuste manual o reversa
)

// Tipos de referencia opcional al documento que originó el movimiento.
const (
	ReferenceKindSale     = "sale"
	ReferenceKindTransfer = "transfer"
	ReferenceKindBatch    = "batch"
)

// MovementEntry es una fila inmutable del ledger de inventario: quién, por qué,
// cuándo, y la cantidad antes/después. Nunca se actualiza ni se borra; una
// reversa es siempre una fila nueva. Exactamente uno de ProductID o
// RawMaterialID está presente: los movimientos de materia prima no tienen
// bodega (espacio implícito de materiales).
type MovementEntry struct {
	ID             string
	ProductID      string // vacío si es materia prima
	RawMaterialID  string // vacío si es producto terminado
	WarehouseCode  string // vacío para materia prima
	Kind           string // sale, production, transfer, adjustment
	QuantityBefore decimal.Decimal
	QuantityDelta  decimal.Decimal // con signo
	QuantityAfter  decimal.Decimal
	Reason         string
	ReferenceID    string // id de la venta, traslado o lote que lo causó
	ReferenceKind  string // sale, transfer, batch
	CreatedBy      string
	CreatedAt      time.Time
}
