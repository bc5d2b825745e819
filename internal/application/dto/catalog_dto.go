package dto

import "time"

// ── Bodegas ───────────────────────────────────────────────────────────────────

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address"`
	Manager string `json:"manager"`
}

// UpdateWarehouseRequest edición parcial de bodega.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Manager *string `json:"manager"`
}

// WarehouseResponse representación HTTP de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address,omitempty"`
	Manager   string    `json:"manager,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse listado paginado de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ── Artículos ─────────────────────────────────────────────────────────────────

// CreateItemRequest alta de artículo.
type CreateItemRequest struct {
	Name          string `json:"name"`
	Dose          string `json:"dose"`
	PackageType   string `json:"package_type"`
	Description   string `json:"description"`
	HasExpiryDate *bool  `json:"has_expiry_date"` // nil = true (por defecto exige vencimiento)
}

// UpdateItemRequest edición parcial de artículo.
type UpdateItemRequest struct {
	Name          *string `json:"name"`
	Dose          *string `json:"dose"`
	PackageType   *string `json:"package_type"`
	Description   *string `json:"description"`
	HasExpiryDate *bool   `json:"has_expiry_date"`
}

// ItemResponse representación HTTP de un artículo.
type ItemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Dose          string    `json:"dose,omitempty"`
	PackageType   string    `json:"package_type,omitempty"`
	Description   string    `json:"description,omitempty"`
	HasExpiryDate bool      `json:"has_expiry_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateSupplierRequest edición parcial de proveedor.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// SupplierResponse representación HTTP de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse listado paginado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Consumidores ──────────────────────────────────────────────────────────────

// CreateConsumerRequest alta de consumidor.
type CreateConsumerRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// UpdateConsumerRequest edición parcial de consumidor.
type UpdateConsumerRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

// ConsumerResponse representación HTTP de un consumidor.
type ConsumerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ConsumerListResponse listado paginado de consumidores.
type ConsumerListResponse struct {
	Items []ConsumerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
