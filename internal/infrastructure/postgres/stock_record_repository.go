package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación del puerto StockRecordRepository sobre PostgreSQL (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador de persistencia para stock. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Get obtiene la fila de stock de un producto en una bodega, sin lock.
// Devuelve nil si el par nunca ha tenido stock.
func (r *StockRecordRepo) Get(productID, warehouseCode string) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_code, quantity, min_quantity, max_quantity, updated_at
		FROM stock_records WHERE product_id = $1 AND warehouse_code = $2`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseCode).Scan(
		&s.ProductID, &s.WarehouseCode, &s.Quantity, &s.MinQuantity, &s.MaxQuantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// GetForUpdate bloquea la fila de stock (SELECT FOR UPDATE). Si el par nunca
// ha tenido stock, primero materializa la fila en cero: sin fila no hay nada
// que bloquear, y dos primeras operaciones concurrentes del mismo par
// correrían sin serializarse. Con ON CONFLICT DO NOTHING la perdedora de la
// inserción simplemente queda bloqueada sobre la fila de la ganadora al
// re-seleccionar FOR UPDATE.
func (r *StockRecordRepo) GetForUpdate(productID, warehouseCode string) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_code, quantity, min_quantity, max_quantity, updated_at
		FROM stock_records WHERE product_id = $1 AND warehouse_code = $2 FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseCode).Scan(
		&s.ProductID, &s.WarehouseCode, &s.Quantity, &s.MinQuantity, &s.MaxQuantity, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = r.q.Exec(context.Background(), `
			INSERT INTO stock_records (product_id, warehouse_code, quantity, min_quantity, max_quantity, updated_at)
			VALUES ($1, $2, 0, 0, 0, now())
			ON CONFLICT (product_id, warehouse_code) DO NOTHING`,
			productID, warehouseCode)
		if err != nil {
			return nil, fmt.Errorf("init stock record: %w", err)
		}
		err = r.q.QueryRow(context.Background(), query, productID, warehouseCode).Scan(
			&s.ProductID, &s.WarehouseCode, &s.Quantity, &s.MinQuantity, &s.MaxQuantity, &s.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("lock stock record: %w", err)
	}
	return &s, nil
}

// Upsert escribe la cantidad resultante del ajuste. El CHECK quantity >= 0 de
// la tabla respalda el invariante que la transacción ya validó.
func (r *StockRecordRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (product_id, warehouse_code, quantity, min_quantity, max_quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, warehouse_code)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.WarehouseCode, record.Quantity,
		record.MinQuantity, record.MaxQuantity, record.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		// Par nunca antes stockeado: GetForUpdate no encontró fila que
		// bloquear, así que dos primeras operaciones concurrentes llegan
		// ambas aquí y la perdedora choca con el UNIQUE. Es reintentable.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// List lista filas de stock con filtros opcionales, ordenadas por bodega y producto.
func (r *StockRecordRepo) List(filter repository.StockFilter) ([]*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_code, quantity, min_quantity, max_quantity, updated_at
		FROM stock_records
		WHERE ($1 = '' OR product_id::text = $1)
		  AND ($2 = '' OR warehouse_code = $2)
		ORDER BY warehouse_code, product_id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query,
		filter.ProductID, filter.WarehouseCode, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.WarehouseCode, &s.Quantity,
			&s.MinQuantity, &s.MaxQuantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
