package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidWarehouse   = errors.New("bodega inexistente o inactiva")
	ErrInvalidProduct     = errors.New("producto inexistente o inactivo")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidState       = errors.New("estado no permite la operación")
	// ErrConcurrencyConflict indica lock timeout, deadlock o fallo de serialización.
	// La operación completa puede reintentarse: el rollback no dejó efectos parciales.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintentar la operación")
)

// InsufficientStockError lleva el disponible y lo solicitado para que el caller
// arme un mensaje preciso. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s",
		e.Available.String(), e.Requested.String())
}

// Unwrap permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError indica que la entidad no está en un estado elegible
// (ej: completar un lote ya completado). errors.Is(err, ErrInvalidState) == true.
type InvalidStateError struct {
	Entity  string
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s en estado %q no permite la operación", e.Entity, e.Current)
}

// Unwrap permite comparar contra el sentinel ErrInvalidState.
func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }
