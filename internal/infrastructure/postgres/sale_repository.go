package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `
	id, product_id, warehouse_code, quantity, unit_price, total,
	COALESCE(customer_name, ''), COALESCE(payment_method, ''), status,
	movement_id, COALESCE(created_by::text, ''), created_at, cancelled_at`

// Create persiste una venta. Se llama únicamente dentro de la transacción que
// ya debitó el stock: la fila solo existe si el movimiento existe.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales
			(id, product_id, warehouse_code, quantity, unit_price, total,
			 customer_name, payment_method, status, movement_id, created_by, created_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, NULLIF($11, '')::uuid, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.WarehouseCode, sale.Quantity,
		sale.UnitPrice, sale.Total, sale.CustomerName, sale.PaymentMethod,
		sale.Status, sale.MovementID, sale.CreatedBy, sale.CreatedAt, sale.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate bloquea la fila de la venta (SELECT FOR UPDATE). Dos
// anulaciones concurrentes se serializan aquí: la segunda ve status cancelled.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	s, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock sale: %w", err)
	}
	return s, nil
}

// Update actualiza el estado de una venta (anulación). El movimiento original
// y los montos jamás cambian.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `UPDATE sales SET status = $2, cancelled_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, sale.ID, sale.Status, sale.CancelledAt)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// List lista ventas con paginación, de la más reciente a la más antigua.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) scanOne(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.ProductID, &s.WarehouseCode, &s.Quantity, &s.UnitPrice, &s.Total,
		&s.CustomerName, &s.PaymentMethod, &s.Status, &s.MovementID,
		&s.CreatedBy, &s.CreatedAt, &s.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
