package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

var _ repository.ProductionBatchRepository = (*ProductionBatchRepo)(nil)

// ProductionBatchRepo implementación del puerto ProductionBatchRepository sobre PostgreSQL (usable con pool o tx).
type ProductionBatchRepo struct {
	q Querier
}

// NewProductionBatchRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewProductionBatchRepository(q Querier) *ProductionBatchRepo {
	return &ProductionBatchRepo{q: q}
}

const batchColumns = `
	id, recipe_id, planned_quantity, produced_quantity, total_cost, unit_cost,
	state, COALESCE(warehouse_code, ''), COALESCE(notes, ''), COALESCE(created_by::text, ''),
	created_at, updated_at, completed_at`

// Create persiste un lote recién planeado.
func (r *ProductionBatchRepo) Create(batch *entity.ProductionBatch) error {
	query := `
		INSERT INTO production_batches
			(id, recipe_id, planned_quantity, produced_quantity, total_cost, unit_cost,
			 state, warehouse_code, notes, created_by, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, '')::uuid, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.RecipeID, batch.PlannedQuantity, batch.ProducedQuantity,
		batch.TotalCost, batch.UnitCost, batch.State, batch.WarehouseCode,
		batch.Notes, batch.CreatedBy, batch.CreatedAt, batch.UpdatedAt, batch.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID, con su desglose de empaques si existe.
func (r *ProductionBatchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches WHERE id = $1`
	b, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production batch: %w", err)
	}
	if err := r.loadPackaging(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE). El re-chequeo de
// estado bajo el lock es lo que hace idempotente la completación: la segunda
// llamada concurrente ve el lote ya completado y falla limpia.
func (r *ProductionBatchRepo) GetForUpdate(id string) (*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches WHERE id = $1 FOR UPDATE`
	b, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock production batch: %w", err)
	}
	return b, nil
}

// Update actualiza el lote (estado, cantidades, costos).
func (r *ProductionBatchRepo) Update(batch *entity.ProductionBatch) error {
	query := `
		UPDATE production_batches
		SET produced_quantity = $2, total_cost = $3, unit_cost = $4, state = $5,
		    warehouse_code = NULLIF($6, ''), notes = NULLIF($7, ''), updated_at = $8, completed_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProducedQuantity, batch.TotalCost, batch.UnitCost,
		batch.State, batch.WarehouseCode, batch.Notes, batch.UpdatedAt, batch.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update production batch: %w", err)
	}
	return nil
}

// CreatePackaging inserta las líneas del desglose de empaques de un lote completado.
func (r *ProductionBatchRepo) CreatePackaging(lines []entity.BatchPackaging) error {
	for _, line := range lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO batch_packaging (id, batch_id, packaging_type_id, count, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.BatchID, line.PackagingTypeID, line.Count, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert batch packaging: %w", err)
		}
	}
	return nil
}

// List lista lotes con paginación, del más reciente al más antiguo.
func (r *ProductionBatchRepo) List(limit, offset int) ([]*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatch
	for rows.Next() {
		b, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *ProductionBatchRepo) scanOne(row pgx.Row) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	err := row.Scan(
		&b.ID, &b.RecipeID, &b.PlannedQuantity, &b.ProducedQuantity,
		&b.TotalCost, &b.UnitCost, &b.State, &b.WarehouseCode, &b.Notes,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt, &b.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ProductionBatchRepo) loadPackaging(b *entity.ProductionBatch) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, batch_id, packaging_type_id, count, quantity
		 FROM batch_packaging WHERE batch_id = $1 ORDER BY packaging_type_id`,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("list batch packaging: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.BatchPackaging
		if err := rows.Scan(&line.ID, &line.BatchID, &line.PackagingTypeID, &line.Count, &line.Quantity); err != nil {
			return fmt.Errorf("scan batch packaging: %w", err)
		}
		b.Packaging = append(b.Packaging, line)
	}
	return rows.Err()
}
