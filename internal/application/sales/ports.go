package sales

import (
	"context"

	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// TxRunner transacción para ventas: el débito de stock y la fila de la venta
// se escriben juntos o no se escribe ninguno.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementEntryRepository,
		stockRepo repository.StockRecordRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
