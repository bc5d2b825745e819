package entity

import "time"

// AuditLog registro del log de operaciones. Se inserta en la misma transacción
// que la mutación que describe: o ambas commitean o ninguna.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string // p. ej. "Create Transfer", "Resolve Mismatch"
	Details   string
	CreatedAt time.Time
}
