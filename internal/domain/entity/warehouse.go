package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	Name      string
	Code      string
	Address   string
	Manager   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
