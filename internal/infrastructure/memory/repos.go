package memory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// Los repos en memoria replican el contrato de los adaptadores PostgreSQL:
// nil en lecturas sin resultado, ErrDuplicate en inserciones repetidas, y
// GetForUpdate devolviendo un registro en cero para pares de stock nuevos.
// La serialización real la da el txMu del Store.

// ─── warehouses ──────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) Create(w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.Code]; ok {
		return domain.ErrDuplicate
	}
	r.s.warehouses[w.Code] = *w
	return nil
}

func (r *warehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.warehouses[code]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *warehouseRepo) Update(w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.Code] = *w
	return nil
}

func (r *warehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	codes := make([]string, 0, len(r.s.warehouses))
	for c := range r.s.warehouses {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	var list []*entity.Warehouse
	for _, c := range paginate(codes, limit, offset) {
		w := r.s.warehouses[c]
		list = append(list, &w)
	}
	return list, nil
}

func (r *warehouseRepo) HasStock(code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, rec := range r.s.stock {
		if strings.HasSuffix(key, "|"+code) && rec.Quantity.IsPositive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *warehouseRepo) Delete(code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.warehouses, code)
	return nil
}

// ─── products ────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.products)
	var list []*entity.Product
	for _, id := range paginate(ids, limit, offset) {
		p := r.s.products[id]
		list = append(list, &p)
	}
	return list, nil
}

// ─── raw materials ───────────────────────────────────────────────────────────

type materialRepo struct{ s *Store }

func (r *materialRepo) Create(m *entity.RawMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[m.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.materials[m.ID] = *m
	return nil
}

func (r *materialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.materials[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *materialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	return r.GetByID(id)
}

func (r *materialRepo) Update(m *entity.RawMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.CurrentStock.IsNegative() {
		return domain.ErrInsufficientStock
	}
	r.s.materials[m.ID] = *m
	return nil
}

func (r *materialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.materials)
	var list []*entity.RawMaterial
	for _, id := range paginate(ids, limit, offset) {
		m := r.s.materials[id]
		list = append(list, &m)
	}
	return list, nil
}

// ─── stock records ───────────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

func (r *stockRepo) Get(productID, warehouseCode string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.stock[stockKey(productID, warehouseCode)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *stockRepo) GetForUpdate(productID, warehouseCode string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.stock[stockKey(productID, warehouseCode)]; ok {
		return &rec, nil
	}
	return &entity.StockRecord{
		ProductID:     productID,
		WarehouseCode: warehouseCode,
		Quantity:      decimal.Zero,
	}, nil
}

func (r *stockRepo) Upsert(rec *entity.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec.Quantity.IsNegative() {
		return domain.ErrInsufficientStock
	}
	r.s.stock[stockKey(rec.ProductID, rec.WarehouseCode)] = *rec
	return nil
}

func (r *stockRepo) List(filter repository.StockFilter) ([]*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	keys := sortedKeys(r.s.stock)
	var matched []*entity.StockRecord
	for _, k := range keys {
		rec := r.s.stock[k]
		if filter.ProductID != "" && rec.ProductID != filter.ProductID {
			continue
		}
		if filter.WarehouseCode != "" && rec.WarehouseCode != filter.WarehouseCode {
			continue
		}
		matched = append(matched, &rec)
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

// ─── movement entries ────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(entry *entity.MovementEntry) error {
	if r.s.MovementCreateErr != nil {
		if err := r.s.MovementCreateErr(entry); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *entry)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.MovementEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			mm := m
			return &mm, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) List(filter repository.MovementFilter) ([]*entity.MovementEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*entity.MovementEntry
	for i := range r.s.movements {
		m := r.s.movements[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.RawMaterialID != "" && m.RawMaterialID != filter.RawMaterialID {
			continue
		}
		if filter.WarehouseCode != "" && m.WarehouseCode != filter.WarehouseCode {
			continue
		}
		if filter.ReferenceID != "" && m.ReferenceID != filter.ReferenceID {
			continue
		}
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, &m)
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

// ─── transfers ───────────────────────────────────────────────────────────────

type transferRepo struct{ s *Store }

func (r *transferRepo) Create(t *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.transfers[t.ID] = *t
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.transfers[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *transferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.transfers)
	var list []*entity.Transfer
	for _, id := range paginate(ids, limit, offset) {
		t := r.s.transfers[id]
		list = append(list, &t)
	}
	return list, nil
}

// ─── recipes ─────────────────────────────────────────────────────────────────

type recipeRepo struct{ s *Store }

func (r *recipeRepo) Create(rec *entity.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recipes[rec.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *rec
	cp.Ingredients = append([]entity.RecipeIngredient(nil), rec.Ingredients...)
	sort.Slice(cp.Ingredients, func(i, j int) bool {
		return cp.Ingredients[i].RawMaterialID < cp.Ingredients[j].RawMaterialID
	})
	r.s.recipes[rec.ID] = cp
	return nil
}

func (r *recipeRepo) GetByID(id string) (*entity.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.recipes[id]; ok {
		cp := rec
		cp.Ingredients = append([]entity.RecipeIngredient(nil), rec.Ingredients...)
		return &cp, nil
	}
	return nil, nil
}

func (r *recipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.recipes)
	var list []*entity.Recipe
	for _, id := range paginate(ids, limit, offset) {
		rec := r.s.recipes[id]
		cp := rec
		cp.Ingredients = append([]entity.RecipeIngredient(nil), rec.Ingredients...)
		list = append(list, &cp)
	}
	return list, nil
}

// ─── packaging types ─────────────────────────────────────────────────────────

type packagingRepo struct{ s *Store }

func (r *packagingRepo) Create(p *entity.PackagingType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.packagings[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.packagings[p.ID] = *p
	return nil
}

func (r *packagingRepo) GetByID(id string) (*entity.PackagingType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.packagings[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *packagingRepo) Update(p *entity.PackagingType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.packagings[p.ID] = *p
	return nil
}

func (r *packagingRepo) List(limit, offset int) ([]*entity.PackagingType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.packagings)
	var list []*entity.PackagingType
	for _, id := range paginate(ids, limit, offset) {
		p := r.s.packagings[id]
		list = append(list, &p)
	}
	return list, nil
}

// ─── production batches ──────────────────────────────────────────────────────

type batchRepo struct{ s *Store }

func (r *batchRepo) Create(b *entity.ProductionBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.batches[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.batches[b.ID] = *b
	return nil
}

func (r *batchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.batches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *batchRepo) GetForUpdate(id string) (*entity.ProductionBatch, error) {
	return r.GetByID(id)
}

func (r *batchRepo) Update(b *entity.ProductionBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.batches[b.ID] = *b
	return nil
}

func (r *batchRepo) CreatePackaging(lines []entity.BatchPackaging) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.batchLines = append(r.s.batchLines, lines...)
	return nil
}

func (r *batchRepo) List(limit, offset int) ([]*entity.ProductionBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.batches)
	var list []*entity.ProductionBatch
	for _, id := range paginate(ids, limit, offset) {
		b := r.s.batches[id]
		list = append(list, &b)
	}
	return list, nil
}

// ─── sales ───────────────────────────────────────────────────────────────────

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale, ok := r.s.sales[id]; ok {
		return &sale, nil
	}
	return nil, nil
}

func (r *saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) Update(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.sales)
	var list []*entity.Sale
	for _, id := range paginate(ids, limit, offset) {
		sale := r.s.sales[id]
		list = append(list, &sale)
	}
	return list, nil
}

// ─── users ───────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			uu := u
			return &uu, nil
		}
	}
	return nil, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
