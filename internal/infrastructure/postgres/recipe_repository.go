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

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de persistencia para recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una receta con sus ingredientes.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, name, product_id, yield_quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Name, recipe.ProductID, recipe.YieldQuantity,
		recipe.Active, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	for _, ing := range recipe.Ingredients {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO recipe_ingredients (id, recipe_id, raw_material_id, quantity)
			 VALUES ($1, $2, $3, $4)`,
			ing.ID, recipe.ID, ing.RawMaterialID, ing.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una receta con sus ingredientes, ordenados por
// raw_material_id. El orden estable importa: la completación de lotes adquiere
// los locks de materias primas en este orden.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `
		SELECT id, name, product_id, yield_quantity, active, created_at, updated_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.Name, &rec.ProductID, &rec.YieldQuantity,
		&rec.Active, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if err := r.loadIngredients(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List lista recetas con paginación, ordenadas por nombre, con ingredientes.
func (r *RecipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	query := `
		SELECT id, name, product_id, yield_quantity, active, created_at, updated_at
		FROM recipes ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.ProductID, &rec.YieldQuantity,
			&rec.Active, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range list {
		if err := r.loadIngredients(rec); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *RecipeRepo) loadIngredients(rec *entity.Recipe) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, recipe_id, raw_material_id, quantity
		 FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY raw_material_id`,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.RawMaterialID, &ing.Quantity); err != nil {
			return fmt.Errorf("scan recipe ingredient: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	return rows.Err()
}
