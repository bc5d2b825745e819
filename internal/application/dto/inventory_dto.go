package dto

import "time"

// AvailabilityRow lote disponible con su clasificación de frescura,
// en orden FEFO (vence antes primero, sin vencimiento al final).
type AvailabilityRow struct {
	BatchID       string  `json:"batch_id"`
	WarehouseID   string  `json:"warehouse_id"`
	ItemID        string  `json:"item_id"`
	SupplierID    *string `json:"supplier_id,omitempty"`
	Expiration    *string `json:"expiration,omitempty"`
	Quantity      int64   `json:"quantity"`
	DaysRemaining *int    `json:"days_remaining,omitempty"`
	Tier          string  `json:"tier"`
	Used          bool    `json:"used"`
}

// AddReceiptRequest recibo de mercadería: entrada de stock a una bodega.
type AddReceiptRequest struct {
	WarehouseID string  `json:"warehouse_id"`
	ItemID      string  `json:"item_id"`
	SupplierID  *string `json:"supplier_id"`
	Expiration  *string `json:"expiration"` // YYYY-MM, obligatorio si el artículo maneja vencimiento
	EntryDate   *string `json:"entry_date"` // YYYY-MM-DD
	Quantity    int64   `json:"quantity"`
}

// UpdateReceiptRequest corrección de un recibo aún no usado en traslados.
type UpdateReceiptRequest struct {
	Quantity   *int64  `json:"quantity"`
	SupplierID *string `json:"supplier_id"`
	EntryDate  *string `json:"entry_date"`
}

// BatchResponse representación HTTP de un lote.
type BatchResponse struct {
	ID          string     `json:"id"`
	WarehouseID string     `json:"warehouse_id"`
	ItemID      string     `json:"item_id"`
	SupplierID  *string    `json:"supplier_id,omitempty"`
	Expiration  *string    `json:"expiration,omitempty"`
	EntryDate   *time.Time `json:"entry_date,omitempty"`
	Quantity    int64      `json:"quantity"`
	Used        bool       `json:"used"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
