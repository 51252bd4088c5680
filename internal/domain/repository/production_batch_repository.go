package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// ProductionBatchRepository define el puerto de persistencia para lotes.
type ProductionBatchRepository interface {
	Create(batch *entity.ProductionBatch) error
	GetByID(id string) (*entity.ProductionBatch, error)
	// GetForUpdate bloquea la fila del lote; el re-chequeo de estado dentro de
	// la transacción es lo que hace idempotente la completación.
	GetForUpdate(id string) (*entity.ProductionBatch, error)
	Update(batch *entity.ProductionBatch) error
	CreatePackaging(lines []entity.BatchPackaging) error
	List(limit, offset int) ([]*entity.ProductionBatch, error)
}
