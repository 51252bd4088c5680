package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/pos-inventario-api/internal/domain"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// fakeQuerier captura el SQL emitido por los repos sin tocar una base real.
// Los tests de este archivo fijan el contrato de tipos con el esquema: las
// columnas uuid exigen casts explícitos (NULLIF resuelve a text en el INSERT,
// y '' no parsea como uuid en COALESCE ni en los filtros por texto).
type fakeQuerier struct {
	execSQL  []string
	execErr  error
	querySQL []string
	rows     []fakeRow
}

type fakeRow struct {
	err  error
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scan != nil {
		return r.scan(dest...)
	}
	return r.err
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execSQL = append(q.execSQL, sql)
	return pgconn.CommandTag{}, q.execErr
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.querySQL = append(q.querySQL, sql)
	return nil, pgx.ErrNoRows
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.querySQL = append(q.querySQL, sql)
	if len(q.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func stockRow(productID, warehouseCode string, qty decimal.Decimal) fakeRow {
	return fakeRow{scan: func(dest ...any) error {
		*dest[0].(*string) = productID
		*dest[1].(*string) = warehouseCode
		*dest[2].(*decimal.Decimal) = qty
		*dest[3].(*decimal.Decimal) = decimal.Zero
		*dest[4].(*decimal.Decimal) = decimal.Zero
		*dest[5].(*time.Time) = time.Now()
		return nil
	}}
}

// ─── contrato de tipos uuid ──────────────────────────────────────────────────

func TestMovementCreate_CastsUUIDEnOpcionales(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewMovementEntryRepository(q)

	require.NoError(t, repo.Create(&entity.MovementEntry{
		ID: "m1", ProductID: "p1", WarehouseCode: "AP",
		Kind: entity.MovementKindAdjustment, CreatedAt: time.Now(),
	}))

	require.Len(t, q.execSQL, 1)
	insert := q.execSQL[0]
	for _, frag := range []string{
		"NULLIF($2, '')::uuid",  // product_id
		"NULLIF($3, '')::uuid",  // raw_material_id
		"NULLIF($10, '')::uuid", // reference_id
		"NULLIF($12, '')::uuid", // created_by
	} {
		assert.Contains(t, insert, frag)
	}
	// warehouse_code y reason son text, no llevan cast.
	assert.NotContains(t, insert, "NULLIF($4, '')::uuid")
	assert.NotContains(t, insert, "NULLIF($9, '')::uuid")
}

func TestMovementColumns_ProyectaUUIDComoTexto(t *testing.T) {
	for _, frag := range []string{
		"COALESCE(product_id::text, '')",
		"COALESCE(raw_material_id::text, '')",
		"COALESCE(reference_id::text, '')",
		"COALESCE(created_by::text, '')",
	} {
		assert.Contains(t, movementColumns, frag)
	}
}

func TestMovementList_FiltraUUIDComoTexto(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewMovementEntryRepository(q)

	_, _ = repo.List(repository.MovementFilter{})

	require.Len(t, q.querySQL, 1)
	where := q.querySQL[0]
	assert.Contains(t, where, "product_id::text = $1")
	assert.Contains(t, where, "raw_material_id::text = $2")
	assert.Contains(t, where, "reference_id::text = $4")
	assert.Contains(t, where, "warehouse_code = $3")
}

func TestStockList_FiltraProductoComoTexto(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewStockRecordRepository(q)

	_, _ = repo.List(repository.StockFilter{})

	require.Len(t, q.querySQL, 1)
	assert.Contains(t, q.querySQL[0], "product_id::text = $1")
}

func TestInsertsConActor_CasteanCreatedBy(t *testing.T) {
	q := &fakeQuerier{}

	require.NoError(t, NewTransferRepository(q).Create(&entity.Transfer{ID: "t1"}))
	require.NoError(t, NewSaleRepository(q).Create(&entity.Sale{ID: "s1"}))
	require.NoError(t, NewProductionBatchRepository(q).Create(&entity.ProductionBatch{ID: "b1"}))

	require.Len(t, q.execSQL, 3)
	assert.Contains(t, q.execSQL[0], "NULLIF($10, '')::uuid") // transfers.created_by
	assert.Contains(t, q.execSQL[1], "NULLIF($11, '')::uuid") // sales.created_by
	assert.Contains(t, q.execSQL[2], "NULLIF($10, '')::uuid") // production_batches.created_by

	assert.Contains(t, saleColumns, "COALESCE(created_by::text, '')")
	assert.Contains(t, batchColumns, "COALESCE(created_by::text, '')")
}

// ─── creación perezosa de la fila de stock ───────────────────────────────────

func TestStockGetForUpdate_ParNuevoMaterializaFilaEnCero(t *testing.T) {
	q := &fakeQuerier{rows: []fakeRow{
		{err: pgx.ErrNoRows},
		stockRow("p1", "AP", decimal.Zero),
	}}
	repo := NewStockRecordRepository(q)

	rec, err := repo.GetForUpdate("p1", "AP")
	require.NoError(t, err)
	assert.True(t, rec.Quantity.IsZero())

	// Inserta la fila en cero y vuelve a tomar el lock sobre ella.
	require.Len(t, q.execSQL, 1)
	assert.Contains(t, q.execSQL[0], "ON CONFLICT (product_id, warehouse_code) DO NOTHING")
	require.Len(t, q.querySQL, 2)
	assert.Contains(t, q.querySQL[0], "FOR UPDATE")
	assert.Contains(t, q.querySQL[1], "FOR UPDATE")
}

func TestStockGetForUpdate_FilaExistenteNoInserta(t *testing.T) {
	q := &fakeQuerier{rows: []fakeRow{stockRow("p1", "AP", decimal.RequireFromString("7"))}}
	repo := NewStockRecordRepository(q)

	rec, err := repo.GetForUpdate("p1", "AP")
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(decimal.RequireFromString("7")))
	assert.Empty(t, q.execSQL)
}

// ─── clasificación de errores en Upsert ──────────────────────────────────────

func TestStockUpsert_ColisionDeInsercionEsReintentable(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}}
	repo := NewStockRecordRepository(q)

	err := repo.Upsert(&entity.StockRecord{ProductID: "p1", WarehouseCode: "AP"})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
}

func TestStockUpsert_CheckNegativoEsStockInsuficiente(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23514"}}
	repo := NewStockRecordRepository(q)

	err := repo.Upsert(&entity.StockRecord{ProductID: "p1", WarehouseCode: "AP"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
