package entity

import (
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
)

// Tipos de traslado.
const (
	TransferTypeWarehouse = "warehouse" // bodega -> bodega
	TransferTypeConsumer  = "consumer"  // bodega -> consumidor final
	TransferTypeDisposal  = "disposal"  // baja/destrucción
)

// Estados del traslado. Máquina de estados: pending -> {confirmed, rejected}.
// Un traslado confirmado o rechazado es inmutable.
const (
	TransferStatusPending   = "pending"
	TransferStatusConfirmed = "confirmed"
	TransferStatusRejected  = "rejected"
)

// Transfer representa un traslado de stock. Mientras está pending, QuantitySent
// ya fue debitada de la bodega origen y no acreditada en ningún destino
// ("en tránsito"). QuantityReceived es nil hasta la confirmación.
type Transfer struct {
	ID                     string
	Type                   string
	SourceWarehouseID      string
	DestinationWarehouseID *string // solo para type warehouse
	ConsumerID             *string // solo para type consumer
	ItemID                 string
	SupplierID             *string // proveedor del lote origen, usado en los créditos posteriores
	Expiration             *expiration.Month
	QuantitySent           int64
	QuantityReceived       *int64
	Status                 string
	TransferDate           time.Time
	Notes                  string
	CreatedBy              string
	CreatedAt              time.Time
	ConfirmedAt            *time.Time
}

// IsMismatch indica si el traslado confirmado quedó con faltante:
// se recibió menos de lo enviado y la diferencia no se acreditó en ningún lado.
// Los traslados de baja (disposal) nunca generan discrepancia.
func (t *Transfer) IsMismatch() bool {
	if t.Status != TransferStatusConfirmed || t.Type == TransferTypeDisposal {
		return false
	}
	return t.QuantityReceived != nil && *t.QuantityReceived != t.QuantitySent
}

// Shortfall cantidad enviada y no recibida. Cero si no hay discrepancia.
func (t *Transfer) Shortfall() int64 {
	if !t.IsMismatch() {
		return 0
	}
	return t.QuantitySent - *t.QuantityReceived
}
