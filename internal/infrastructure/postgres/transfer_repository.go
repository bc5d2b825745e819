package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, transfer_type, source_warehouse_id, destination_warehouse_id, consumer_id,
	item_id, supplier_id, expiration, quantity_sent, quantity_received, status,
	transfer_date, notes, created_by, created_at, confirmed_at`

// Create inserta un traslado.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Type, t.SourceWarehouseID, t.DestinationWarehouseID, t.ConsumerID,
		t.ItemID, t.SupplierID, expToDB(t.Expiration), t.QuantitySent, t.QuantityReceived, t.Status,
		t.TransferDate, t.Notes, t.CreatedBy, t.CreatedAt, t.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID. Devuelve nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene un traslado bloqueando la fila (SELECT ... FOR UPDATE).
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *TransferRepo) getOne(query, id string) (*entity.Transfer, error) {
	t, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// Update actualiza estado, cantidad recibida y timestamp de cierre.
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $2, quantity_received = $3, confirmed_at = $4, notes = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Status, t.QuantityReceived, t.ConfirmedAt, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// Delete elimina un traslado.
func (r *TransferRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

// ListByStatus lista traslados en un estado dado, los más recientes primero.
func (r *TransferRepo) ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListAll lista todos los traslados, los más recientes primero.
func (r *TransferRepo) ListAll(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListOpenMismatches traslados confirmados no-disposal con faltante y sin
// resolución registrada.
func (r *TransferRepo) ListOpenMismatches() ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers t
		WHERE t.status = 'confirmed'
		  AND t.transfer_type <> 'disposal'
		  AND t.quantity_received IS NOT NULL
		  AND t.quantity_received <> t.quantity_sent
		  AND NOT EXISTS (SELECT 1 FROM mismatch_resolutions mr WHERE mr.transfer_id = t.id)
		ORDER BY t.confirmed_at ASC`
	return r.list(query)
}

func (r *TransferRepo) list(query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transfer
	for rows.Next() {
		t, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransferRepo) scanOne(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var exp *string
	if err := row.Scan(
		&t.ID, &t.Type, &t.SourceWarehouseID, &t.DestinationWarehouseID, &t.ConsumerID,
		&t.ItemID, &t.SupplierID, &exp, &t.QuantitySent, &t.QuantityReceived, &t.Status,
		&t.TransferDate, &t.Notes, &t.CreatedBy, &t.CreatedAt, &t.ConfirmedAt,
	); err != nil {
		return nil, err
	}
	m, err := expFromDB(exp)
	if err != nil {
		return nil, err
	}
	t.Expiration = m
	return &t, nil
}
