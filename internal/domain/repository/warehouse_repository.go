package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByCode(code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	// HasStock indica si la bodega tiene algún registro con cantidad > 0
	// (guarda de borrado: nunca eliminar una bodega referenciada con stock).
	HasStock(code string) (bool, error)
	Delete(code string) error
}
