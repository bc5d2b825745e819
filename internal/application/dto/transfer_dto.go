package dto

import "time"

// CreateTransferRequest datos para crear un traslado.
// Para type warehouse: destination_warehouse_id obligatorio, consumer_id vacío.
// Para type consumer: consumer_id obligatorio. Para type disposal: ninguno.
type CreateTransferRequest struct {
	TransferType           string  `json:"transfer_type"`
	SourceWarehouseID      string  `json:"source_warehouse_id"`
	DestinationWarehouseID *string `json:"destination_warehouse_id"`
	ConsumerID             *string `json:"consumer_id"`
	ItemID                 string  `json:"item_id"`
	Expiration             *string `json:"expiration"` // YYYY-MM, nil para artículos sin vencimiento
	Quantity               int64   `json:"quantity"`
	TransferDate           string  `json:"transfer_date"` // YYYY-MM-DD, vacío = hoy
	Notes                  string  `json:"notes"`
}

// ConfirmTransferRequest cantidad efectivamente recibida en destino.
type ConfirmTransferRequest struct {
	QuantityReceived int64 `json:"quantity_received"`
}

// TransferResponse representación HTTP de un traslado.
type TransferResponse struct {
	ID                     string     `json:"id"`
	TransferType           string     `json:"transfer_type"`
	SourceWarehouseID      string     `json:"source_warehouse_id"`
	DestinationWarehouseID *string    `json:"destination_warehouse_id,omitempty"`
	ConsumerID             *string    `json:"consumer_id,omitempty"`
	ItemID                 string     `json:"item_id"`
	Expiration             *string    `json:"expiration,omitempty"`
	QuantitySent           int64      `json:"quantity_sent"`
	QuantityReceived       *int64     `json:"quantity_received,omitempty"`
	Status                 string     `json:"status"`
	TransferDate           time.Time  `json:"transfer_date"`
	Notes                  string     `json:"notes,omitempty"`
	CreatedBy              string     `json:"created_by"`
	CreatedAt              time.Time  `json:"created_at"`
	ConfirmedAt            *time.Time `json:"confirmed_at,omitempty"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransitRow cantidad en tránsito (traslados pending) por artículo/vencimiento.
type TransitRow struct {
	ItemID     string  `json:"item_id"`
	Expiration *string `json:"expiration,omitempty"`
	Quantity   int64   `json:"quantity"`
	Transfers  int     `json:"transfers"`
}

// ResolveMismatchRequest acción y notas para cerrar una discrepancia.
type ResolveMismatchRequest struct {
	Action string `json:"action"` // delete | return_source | add_destination
	Notes  string `json:"notes"`
}

// MismatchCaseResponse traslado confirmado con faltante abierto.
type MismatchCaseResponse struct {
	Transfer     TransferResponse `json:"transfer"`
	ShortfallQty int64            `json:"shortfall_qty"`
}

// ResolutionResponse resolución registrada de una discrepancia.
type ResolutionResponse struct {
	ID           string    `json:"id"`
	TransferID   string    `json:"transfer_id"`
	Action       string    `json:"action"`
	ShortfallQty int64     `json:"shortfall_qty"`
	Notes        string    `json:"notes"`
	ResolvedBy   string    `json:"resolved_by"`
	ResolvedAt   time.Time `json:"resolved_at"`
}
