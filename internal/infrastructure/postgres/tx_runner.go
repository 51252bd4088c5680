package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/application/production"
	"github.com/dcastano/pos-inventario-api/internal/application/sales"
	"github.com/dcastano/pos-inventario-api/internal/application/usecase"
	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ usecase.MaterialTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a la tx. Un error de fn hace Rollback total; los errores
// transitorios de concurrencia se traducen a domain.ErrConcurrencyConflict.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isConcurrencyConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isConcurrencyConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción de ajuste o traslado: ledger, stock y traslados.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	stockRepo repository.StockRecordRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementEntryRepository(q), NewStockRecordRepository(q), NewTransferRepository(q))
	})
}

// RunProduction transacción de completación de lote: ledger, stock de producto
// terminado, materias primas y el lote mismo.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	stockRepo repository.StockRecordRepository,
	materialRepo repository.RawMaterialRepository,
	batchRepo repository.ProductionBatchRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementEntryRepository(q), NewStockRecordRepository(q),
			NewRawMaterialRepository(q), NewProductionBatchRepository(q))
	})
}

// RunSale transacción de venta o anulación: ledger, stock y la fila de la venta.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	stockRepo repository.StockRecordRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementEntryRepository(q), NewStockRecordRepository(q), NewSaleRepository(q))
	})
}

// RunMaterial transacción de reabasto manual de materia prima.
func (r *TxRunner) RunMaterial(ctx context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	materialRepo repository.RawMaterialRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementEntryRepository(q), NewRawMaterialRepository(q))
	})
}
