package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo log de operaciones sobre PostgreSQL, solo inserción y listado.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador del log. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada del log.
func (r *AuditLogRepo) Create(l *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.UserID, l.Action, l.Details, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List lista el log, del más reciente al más antiguo.
func (r *AuditLogRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, action, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
