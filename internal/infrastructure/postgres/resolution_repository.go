package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ResolutionRepository = (*ResolutionRepo)(nil)

// ResolutionRepo implementación de ResolutionRepository sobre PostgreSQL.
type ResolutionRepo struct {
	q Querier
}

// NewResolutionRepository construye el adaptador de resoluciones. Pasar pool o tx (Querier).
func NewResolutionRepository(q Querier) *ResolutionRepo {
	return &ResolutionRepo{q: q}
}

// Create inserta la resolución. La tabla tiene UNIQUE(transfer_id): si dos
// resoluciones compiten, la segunda falla con ErrAlreadyResolved.
func (r *ResolutionRepo) Create(res *entity.MismatchResolution) error {
	query := `
		INSERT INTO mismatch_resolutions (id, transfer_id, action, shortfall_qty, notes, resolved_by, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.TransferID, res.Action, res.ShortfallQty, res.Notes, res.ResolvedBy, res.ResolvedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: traslado %s", domain.ErrAlreadyResolved, res.TransferID)
		}
		return fmt.Errorf("create resolution: %w", err)
	}
	return nil
}

// GetByTransferID obtiene la resolución de un traslado. Nil si no existe.
func (r *ResolutionRepo) GetByTransferID(transferID string) (*entity.MismatchResolution, error) {
	query := `
		SELECT id, transfer_id, action, shortfall_qty, notes, resolved_by, resolved_at
		FROM mismatch_resolutions WHERE transfer_id = $1`
	var res entity.MismatchResolution
	err := r.q.QueryRow(context.Background(), query, transferID).Scan(
		&res.ID, &res.TransferID, &res.Action, &res.ShortfallQty, &res.Notes, &res.ResolvedBy, &res.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resolution: %w", err)
	}
	return &res, nil
}

// List lista resoluciones, las más recientes primero.
func (r *ResolutionRepo) List(limit, offset int) ([]*entity.MismatchResolution, error) {
	query := `
		SELECT id, transfer_id, action, shortfall_qty, notes, resolved_by, resolved_at
		FROM mismatch_resolutions
		ORDER BY resolved_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var out []*entity.MismatchResolution
	for rows.Next() {
		var res entity.MismatchResolution
		if err := rows.Scan(
			&res.ID, &res.TransferID, &res.Action, &res.ShortfallQty, &res.Notes, &res.ResolvedBy, &res.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}
