package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas.
// GetByID carga los ingredientes ordenados por raw_material_id: el orden
// estable importa para adquirir locks de forma determinista.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	List(limit, offset int) ([]*entity.Recipe, error)
}
