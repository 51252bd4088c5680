package usecase

import (
	"context"

	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// MaterialTxRunner transacción para reabastos manuales de materia prima:
// el crédito de stock y su fila del ledger se escriben juntos.
type MaterialTxRunner interface {
	RunMaterial(ctx context.Context, fn func(
		movRepo repository.MovementEntryRepository,
		materialRepo repository.RawMaterialRepository,
	) error) error
}
