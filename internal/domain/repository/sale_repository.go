package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila para la anulación (evita doble reacreditación).
	GetForUpdate(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	List(limit, offset int) ([]*entity.Sale, error)
}
