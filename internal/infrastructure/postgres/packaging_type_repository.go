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

var _ repository.PackagingTypeRepository = (*PackagingTypeRepo)(nil)

// PackagingTypeRepo implementación del puerto PackagingTypeRepository sobre PostgreSQL (usable con pool o tx).
type PackagingTypeRepo struct {
	q Querier
}

// NewPackagingTypeRepository construye el adaptador de persistencia para tipos de empaque. Pasar pool o tx (Querier).
func NewPackagingTypeRepository(q Querier) *PackagingTypeRepo {
	return &PackagingTypeRepo{q: q}
}

// Create persiste un nuevo tipo de empaque.
func (r *PackagingTypeRepo) Create(packaging *entity.PackagingType) error {
	query := `
		INSERT INTO packaging_types (id, name, unit_equivalent, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		packaging.ID, packaging.Name, packaging.UnitEquivalent,
		packaging.Active, packaging.CreatedAt, packaging.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert packaging type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de empaque por ID.
func (r *PackagingTypeRepo) GetByID(id string) (*entity.PackagingType, error) {
	query := `
		SELECT id, name, unit_equivalent, active, created_at, updated_at
		FROM packaging_types WHERE id = $1`
	var p entity.PackagingType
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.UnitEquivalent, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging type: %w", err)
	}
	return &p, nil
}

// Update actualiza un tipo de empaque existente.
func (r *PackagingTypeRepo) Update(packaging *entity.PackagingType) error {
	query := `
		UPDATE packaging_types SET name = $2, unit_equivalent = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		packaging.ID, packaging.Name, packaging.UnitEquivalent,
		packaging.Active, packaging.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update packaging type: %w", err)
	}
	return nil
}

// List lista tipos de empaque con paginación, ordenados por nombre.
func (r *PackagingTypeRepo) List(limit, offset int) ([]*entity.PackagingType, error) {
	query := `
		SELECT id, name, unit_equivalent, active, created_at, updated_at
		FROM packaging_types ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list packaging types: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackagingType
	for rows.Next() {
		var p entity.PackagingType
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitEquivalent, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan packaging type: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
