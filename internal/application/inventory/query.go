package inventory

import (
	"context"

	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre stock y ledger. No toma locks:
// los tableros pueden ver datos levemente desactualizados entre transacciones.
type QueryUseCase struct {
	stockRepo repository.StockRecordRepository
	movRepo   repository.MovementEntryRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(stockRepo repository.StockRecordRepository, movRepo repository.MovementEntryRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// Stock lista registros de stock filtrados por producto y/o bodega.
func (uc *QueryUseCase) Stock(_ context.Context, filter repository.StockFilter) ([]*entity.StockRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.stockRepo.List(filter)
}

// Movements consulta de auditoría del ledger, paginada y ordenada por fecha.
func (uc *QueryUseCase) Movements(_ context.Context, filter repository.MovementFilter) ([]*entity.MovementEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.movRepo.List(filter)
}
