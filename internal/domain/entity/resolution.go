package entity

import "time"

// Acciones de resolución de una discrepancia.
const (
	ResolutionActionDelete         = "delete"          // dar de baja el faltante (no se acredita en ningún lado)
	ResolutionActionReturnSource   = "return_source"   // devolver el faltante a la bodega origen
	ResolutionActionAddDestination = "add_destination" // acreditar el faltante en la bodega destino
)

// MismatchResolution cierra la discrepancia de un traslado confirmado con
// faltante. Existe a lo sumo una por traslado (UNIQUE en transfer_id); su
// existencia marca el caso como cerrado.
type MismatchResolution struct {
	ID           string
	TransferID   string
	Action       string
	ShortfallQty int64
	Notes        string
	ResolvedBy   string
	ResolvedAt   time.Time
}
