package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El catálogo es colaborador externo del ledger: aquí solo lo mínimo que el
// motor necesita para validar referencias y precios.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}
