// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con un TxRunner que simula Commit/Rollback por snapshot. Se usa en
// tests de casos de uso y como backend de demos sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/application/production"
	"github.com/dcastano/pos-inventario-api/internal/application/sales"
	"github.com/dcastano/pos-inventario-api/internal/application/usecase"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ production.TxRunner = (*Store)(nil)
var _ sales.TxRunner = (*Store)(nil)
var _ usecase.MaterialTxRunner = (*Store)(nil)

// Store guarda todo el estado en memoria. Las entidades se almacenan por valor
// y los repos devuelven copias, así un rollback restaura el snapshot sin
// aliasing con lo que el caller haya retenido.
type Store struct {
	mu   sync.Mutex // protege los mapas
	txMu sync.Mutex // serializa transacciones (equivale a los locks de fila)

	warehouses map[string]entity.Warehouse
	products   map[string]entity.Product
	materials  map[string]entity.RawMaterial
	stock      map[string]entity.StockRecord // key: productID + "|" + warehouseCode
	movements  []entity.MovementEntry
	transfers  map[string]entity.Transfer
	recipes    map[string]entity.Recipe
	packagings map[string]entity.PackagingType
	batches    map[string]entity.ProductionBatch
	batchLines []entity.BatchPackaging
	sales      map[string]entity.Sale
	users      map[string]entity.User

	// MovementCreateErr permite inyectar fallos de persistencia del ledger en
	// tests de rollback. nil = sin fallos.
	MovementCreateErr func(entry *entity.MovementEntry) error
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		warehouses: make(map[string]entity.Warehouse),
		products:   make(map[string]entity.Product),
		materials:  make(map[string]entity.RawMaterial),
		stock:      make(map[string]entity.StockRecord),
		transfers:  make(map[string]entity.Transfer),
		recipes:    make(map[string]entity.Recipe),
		packagings: make(map[string]entity.PackagingType),
		batches:    make(map[string]entity.ProductionBatch),
		sales:      make(map[string]entity.Sale),
		users:      make(map[string]entity.User),
	}
}

func stockKey(productID, warehouseCode string) string {
	return productID + "|" + warehouseCode
}

// ─── snapshot / rollback ─────────────────────────────────────────────────────

type snapshot struct {
	warehouses map[string]entity.Warehouse
	products   map[string]entity.Product
	materials  map[string]entity.RawMaterial
	stock      map[string]entity.StockRecord
	movements  []entity.MovementEntry
	transfers  map[string]entity.Transfer
	batches    map[string]entity.ProductionBatch
	batchLines []entity.BatchPackaging
	sales      map[string]entity.Sale
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) take() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		warehouses: copyMap(s.warehouses),
		products:   copyMap(s.products),
		materials:  copyMap(s.materials),
		stock:      copyMap(s.stock),
		movements:  append([]entity.MovementEntry(nil), s.movements...),
		transfers:  copyMap(s.transfers),
		batches:    copyMap(s.batches),
		batchLines: append([]entity.BatchPackaging(nil), s.batchLines...),
		sales:      copyMap(s.sales),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses = snap.warehouses
	s.products = snap.products
	s.materials = snap.materials
	s.stock = snap.stock
	s.movements = snap.movements
	s.transfers = snap.transfers
	s.batches = snap.batches
	s.batchLines = snap.batchLines
	s.sales = snap.sales
}

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.take()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(_ context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	stockRepo repository.StockRecordRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.StockRecords(), s.Transfers())
	})
}

// RunProduction implementa production.TxRunner.
func (s *Store) RunProduction(_ context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	stockRepo repository.StockRecordRepository,
	materialRepo repository.RawMaterialRepository,
	batchRepo repository.ProductionBatchRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.StockRecords(), s.RawMaterials(), s.Batches())
	})
}

// RunSale implementa sales.TxRunner.
func (s *Store) RunSale(_ context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	stockRepo repository.StockRecordRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.StockRecords(), s.Sales())
	})
}

// RunMaterial implementa usecase.MaterialTxRunner.
func (s *Store) RunMaterial(_ context.Context, fn func(
	movRepo repository.MovementEntryRepository,
	materialRepo repository.RawMaterialRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.RawMaterials())
	})
}

// ─── accesos a repos ─────────────────────────────────────────────────────────

// Warehouses devuelve el repo de bodegas.
func (s *Store) Warehouses() repository.WarehouseRepository { return &warehouseRepo{s} }

// Products devuelve el repo de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// RawMaterials devuelve el repo de materias primas.
func (s *Store) RawMaterials() repository.RawMaterialRepository { return &materialRepo{s} }

// StockRecords devuelve el repo de stock.
func (s *Store) StockRecords() repository.StockRecordRepository { return &stockRepo{s} }

// Movements devuelve el repo del ledger.
func (s *Store) Movements() repository.MovementEntryRepository { return &movementRepo{s} }

// Transfers devuelve el repo de traslados.
func (s *Store) Transfers() repository.TransferRepository { return &transferRepo{s} }

// Recipes devuelve el repo de recetas.
func (s *Store) Recipes() repository.RecipeRepository { return &recipeRepo{s} }

// PackagingTypes devuelve el repo de tipos de empaque.
func (s *Store) PackagingTypes() repository.PackagingTypeRepository { return &packagingRepo{s} }

// Batches devuelve el repo de lotes.
func (s *Store) Batches() repository.ProductionBatchRepository { return &batchRepo{s} }

// Sales devuelve el repo de ventas.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s} }

// Users devuelve el repo de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// ─── helpers de armado para tests ────────────────────────────────────────────

// SeedWarehouse agrega una bodega activa.
func (s *Store) SeedWarehouse(code, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[code] = entity.Warehouse{Code: code, Name: name, Active: true}
}

// SeedProduct agrega un producto activo con precio.
func (s *Store) SeedProduct(id, name string, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = entity.Product{ID: id, Name: name, Unit: "und", Price: price, Active: true}
}

// SeedStock fija directamente la cantidad de un par (producto, bodega).
func (s *Store) SeedStock(productID, warehouseCode string, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[stockKey(productID, warehouseCode)] = entity.StockRecord{
		ProductID:     productID,
		WarehouseCode: warehouseCode,
		Quantity:      qty,
	}
}

// SeedMaterial agrega una materia prima activa con stock y costo.
func (s *Store) SeedMaterial(id, name string, stock, costPerUnit decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[id] = entity.RawMaterial{
		ID: id, Name: name, Unit: "kg",
		CostPerUnit: costPerUnit, CurrentStock: stock, Active: true,
	}
}

// StockQty devuelve la cantidad actual de un par, cero si no existe.
func (s *Store) StockQty(productID, warehouseCode string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.stock[stockKey(productID, warehouseCode)]; ok {
		return rec.Quantity
	}
	return decimal.Zero
}

// MaterialStock devuelve el stock actual de una materia prima.
func (s *Store) MaterialStock(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materials[id].CurrentStock
}

// MovementCount devuelve cuántas filas tiene el ledger.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}
