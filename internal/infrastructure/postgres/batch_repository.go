package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
// La identidad funcional del lote es (warehouse_id, item_id, expiration); la tabla
// tiene UNIQUE NULLS NOT DISTINCT sobre esa tripleta.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, warehouse_id, item_id, supplier_id, expiration, entry_date, quantity, used, updated_at`

// Get obtiene el lote por identidad funcional. Si la fila no existe devuelve un
// lote con cantidad cero e ID vacío.
func (r *BatchRepo) Get(warehouseID, itemID string, exp *expiration.Month) (*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE warehouse_id = $1 AND item_id = $2 AND expiration IS NOT DISTINCT FROM $3`
	return r.scanOrZero(warehouseID, itemID, exp, query)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT ... FOR UPDATE).
func (r *BatchRepo) GetForUpdate(warehouseID, itemID string, exp *expiration.Month) (*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE warehouse_id = $1 AND item_id = $2 AND expiration IS NOT DISTINCT FROM $3
		FOR UPDATE`
	return r.scanOrZero(warehouseID, itemID, exp, query)
}

func (r *BatchRepo) scanOrZero(warehouseID, itemID string, exp *expiration.Month, query string) (*entity.Batch, error) {
	b, err := r.scanOne(r.q.QueryRow(context.Background(), query, warehouseID, itemID, expToDB(exp)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Batch{WarehouseID: warehouseID, ItemID: itemID, Expiration: exp}, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	b, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch by id: %w", err)
	}
	return b, nil
}

// GetByIDForUpdate obtiene un lote por ID con bloqueo de fila. Nil si no existe.
func (r *BatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	b, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch by id for update: %w", err)
	}
	return b, nil
}

// Upsert inserta o actualiza el lote por identidad funcional.
func (r *BatchRepo) Upsert(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, warehouse_id, item_id, supplier_id, expiration, entry_date, quantity, used, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (warehouse_id, item_id, expiration)
		DO UPDATE SET
			quantity = EXCLUDED.quantity,
			supplier_id = EXCLUDED.supplier_id,
			entry_date = COALESCE(EXCLUDED.entry_date, batches.entry_date),
			used = EXCLUDED.used,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.WarehouseID, batch.ItemID, batch.SupplierID,
		expToDB(batch.Expiration), batch.EntryDate, batch.Quantity, batch.Used,
	)
	if err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}

// Delete elimina la fila del lote.
func (r *BatchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// listBatchesQuery arma el SELECT con solo las condiciones presentes en el
// filtro. Las columnas de identidad son UUID: comparar contra cadena vacía no
// tipa en Postgres, así que un filtro vacío se omite en lugar de neutralizarse.
func listBatchesQuery(filter repository.BatchFilter) (string, []any) {
	query := `SELECT ` + batchColumns + ` FROM batches`
	var conds []string
	var args []any
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		conds = append(conds, fmt.Sprintf("warehouse_id = $%d", len(args)))
	}
	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		conds = append(conds, fmt.Sprintf("item_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY expiration ASC NULLS LAST, warehouse_id, item_id"
	return query, args
}

// List lista lotes según filtro, ordenados por vencimiento (FEFO: NULL al final).
func (r *BatchRepo) List(filter repository.BatchFilter) ([]*entity.Batch, error) {
	query, args := listBatchesQuery(filter)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []*entity.Batch
	for rows.Next() {
		b, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var exp *string
	if err := row.Scan(
		&b.ID, &b.WarehouseID, &b.ItemID, &b.SupplierID, &exp,
		&b.EntryDate, &b.Quantity, &b.Used, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m, err := expFromDB(exp)
	if err != nil {
		return nil, err
	}
	b.Expiration = m
	return &b, nil
}
