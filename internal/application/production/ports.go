package production

import (
	"context"

	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// TxRunner transacción para completar lotes: ledger, stock de producto
// terminado, materias primas y el lote mismo, todo con Commit o Rollback total.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		materialRepo repository.RawMaterialRepository,
		batchRepo repository.ProductionBatchRepository,
	) error) error
}
