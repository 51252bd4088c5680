package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
// Inmutables una vez escritos: no hay Update.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	List(limit, offset int) ([]*entity.Transfer, error)
}
