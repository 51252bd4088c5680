package repository

import "github.com/dcastano/pos-inventario-api/internal/domain/entity"

// StockFilter filtros opcionales para listar stock.
type StockFilter struct {
	ProductID     string
	WarehouseCode string
	Limit         int
	Offset        int
}

// StockRecordRepository define el puerto para consultar/actualizar stock por
// producto+bodega. Las mutaciones se usan únicamente dentro de transacciones.
type StockRecordRepository interface {
	Get(productID, warehouseCode string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); si el par nunca ha
	// tenido stock devuelve un registro en cero listo para Upsert.
	GetForUpdate(productID, warehouseCode string) (*entity.StockRecord, error)
	Upsert(record *entity.StockRecord) error
	List(filter StockFilter) ([]*entity.StockRecord, error)
}
