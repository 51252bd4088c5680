package repository

import (
	"time"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
)

// MovementFilter filtros para la consulta de auditoría del ledger.
type MovementFilter struct {
	ProductID     string
	RawMaterialID string
	WarehouseCode string
	ReferenceID   string
	Kind          string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// MovementEntryRepository define el puerto del ledger append-only.
// No hay Update ni Delete: una fila escrita es definitiva.
type MovementEntryRepository interface {
	Create(entry *entity.MovementEntry) error
	GetByID(id string) (*entity.MovementEntry, error)
	// List ordena por created_at ascendente (orden de auditoría).
	List(filter MovementFilter) ([]*entity.MovementEntry, error)
}
