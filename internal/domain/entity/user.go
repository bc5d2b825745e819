package entity

import "time"

// User representa un usuario del sistema. AccessLevel es uno de los niveles de
// access.Level; WarehouseIDs son las bodegas otorgadas (solo relevante para
// warehouseman).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	AccessLevel  string // viewer, warehouseman, admin, superadmin
	Active       bool
	WarehouseIDs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
