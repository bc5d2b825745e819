package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para el log de operaciones.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(limit, offset int) ([]*entity.AuditLog, error)
}
