package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// PackagingTypeRepository define el puerto de persistencia para tipos de empaque.
type PackagingTypeRepository interface {
	Create(packaging *entity.PackagingType) error
	GetByID(id string) (*entity.PackagingType, error)
	Update(packaging *entity.PackagingType) error
	List(limit, offset int) ([]*entity.PackagingType, error)
}
