package entity

import "time"

// Supplier proveedor que origina los recibos de inventario.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
