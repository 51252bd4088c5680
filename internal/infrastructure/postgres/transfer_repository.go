package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL.
// Los traslados son inmutables una vez escritos: no hay Update.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de persistencia para traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste un traslado ya resuelto, con sus dos movimientos enlazados.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers
			(id, product_id, quantity, from_warehouse, to_warehouse, reason,
			 status, out_movement_id, in_movement_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, NULLIF($10, '')::uuid, $11)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.ProductID, transfer.Quantity,
		transfer.FromWarehouse, transfer.ToWarehouse, transfer.Reason,
		transfer.Status, transfer.OutMovementID, transfer.InMovementID,
		transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT id, product_id, quantity, from_warehouse, to_warehouse, COALESCE(reason, ''),
		       status, out_movement_id, in_movement_id, COALESCE(created_by::text, ''), created_at
		FROM transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProductID, &t.Quantity, &t.FromWarehouse, &t.ToWarehouse, &t.Reason,
		&t.Status, &t.OutMovementID, &t.InMovementID, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// List lista traslados con paginación, del más reciente al más antiguo.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, product_id, quantity, from_warehouse, to_warehouse, COALESCE(reason, ''),
		       status, out_movement_id, in_movement_id, COALESCE(created_by::text, ''), created_at
		FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Quantity, &t.FromWarehouse, &t.ToWarehouse,
			&t.Reason, &t.Status, &t.OutMovementID, &t.InMovementID, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
