package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// RawMaterialRepository define el puerto de persistencia para materias primas.
type RawMaterialRepository interface {
	Create(material *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para mutar CurrentStock.
	GetForUpdate(id string) (*entity.RawMaterial, error)
	Update(material *entity.RawMaterial) error
	List(limit, offset int) ([]*entity.RawMaterial, error)
}
