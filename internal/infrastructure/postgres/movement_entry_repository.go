package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

var _ repository.MovementEntryRepository = (*MovementEntryRepo)(nil)

// MovementEntryRepo implementación del puerto MovementEntryRepository sobre
// PostgreSQL. El ledger es append-only: este adaptador no expone UPDATE ni
// DELETE, y la tabla tampoco los permite (trigger de inmutabilidad).
type MovementEntryRepo struct {
	q Querier
}

// NewMovementEntryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewMovementEntryRepository(q Querier) *MovementEntryRepo {
	return &MovementEntryRepo{q: q}
}

// Create inserta una fila del ledger. Los campos opcionales vacíos se guardan
// como NULL (un movimiento referencia producto o materia prima, nunca ambos).
// NULLIF resuelve a text, así que las columnas uuid llevan cast explícito.
func (r *MovementEntryRepo) Create(entry *entity.MovementEntry) error {
	query := `
		INSERT INTO movement_entries
			(id, product_id, raw_material_id, warehouse_code, kind,
			 quantity_before, quantity_delta, quantity_after,
			 reason, reference_id, reference_kind, created_by, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, NULLIF($4, ''), $5,
			$6, $7, $8, NULLIF($9, ''), NULLIF($10, '')::uuid, NULLIF($11, ''), NULLIF($12, '')::uuid, $13)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.RawMaterialID, entry.WarehouseCode, entry.Kind,
		entry.QuantityBefore, entry.QuantityDelta, entry.QuantityAfter,
		entry.Reason, entry.ReferenceID, entry.ReferenceKind, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement entry: %w", err)
	}
	return nil
}

// Las columnas uuid se proyectan como text antes del COALESCE con '': sin el
// cast, el '' se coerciona a uuid y el SELECT falla al parsear.
const movementColumns = `
	id, COALESCE(product_id::text, ''), COALESCE(raw_material_id::text, ''), COALESCE(warehouse_code, ''), kind,
	quantity_before, quantity_delta, quantity_after,
	COALESCE(reason, ''), COALESCE(reference_id::text, ''), COALESCE(reference_kind, ''), COALESCE(created_by::text, ''), created_at`

func scanMovement(row pgx.Row) (*entity.MovementEntry, error) {
	var m entity.MovementEntry
	err := row.Scan(
		&m.ID, &m.ProductID, &m.RawMaterialID, &m.WarehouseCode, &m.Kind,
		&m.QuantityBefore, &m.QuantityDelta, &m.QuantityAfter,
		&m.Reason, &m.ReferenceID, &m.ReferenceKind, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene una fila del ledger por ID.
func (r *MovementEntryRepo) GetByID(id string) (*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM movement_entries WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement entry: %w", err)
	}
	return m, nil
}

// List consulta el ledger con filtros, ordenado por created_at ascendente
// (orden de auditoría: reproducir la historia en el orden en que ocurrió).
func (r *MovementEntryRepo) List(filter repository.MovementFilter) ([]*entity.MovementEntry, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movement_entries
		WHERE ($1 = '' OR product_id::text = $1)
		  AND ($2 = '' OR raw_material_id::text = $2)
		  AND ($3 = '' OR warehouse_code = $3)
		  AND ($4 = '' OR reference_id::text = $4)
		  AND ($5 = '' OR kind = $5)
		  AND ($6::timestamptz IS NULL OR created_at >= $6)
		  AND ($7::timestamptz IS NULL OR created_at <= $7)
		ORDER BY created_at ASC, id ASC
		LIMIT $8 OFFSET $9`
	rows, err := r.q.Query(context.Background(), query,
		filter.ProductID, filter.RawMaterialID, filter.WarehouseCode,
		filter.ReferenceID, filter.Kind, filter.From, filter.To,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list movement entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementEntry
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement entry: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
