package entity

import "time"

// Item artículo del catálogo (bien de consumo regulado).
// HasExpiryDate gobierna si los lotes de este artículo exigen fecha de
// vencimiento: true la hace obligatoria, false la prohíbe.
type Item struct {
	ID            string
	Name          string
	Dose          string
	PackageType   string
	Description   string
	HasExpiryDate bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
