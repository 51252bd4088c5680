package inventory

import (
	"context"

	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: ajuste y traslado, cada uno con Commit o Rollback total.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
