package entity

import (
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
)

// Batch representa un lote de inventario: cantidad de un artículo en una bodega
// con una combinación vencimiento/proveedor. Identidad funcional:
// (WarehouseID, ItemID, Expiration). La cantidad solo se muta a través del
// ledger (débito/crédito) y nunca baja de cero.
type Batch struct {
	ID          string
	WarehouseID string
	ItemID      string
	SupplierID  *string
	Expiration  *expiration.Month // nil para artículos sin vencimiento
	EntryDate   *time.Time
	Quantity    int64
	// Used indica que el lote fue origen de al menos un traslado; a partir de
	// ahí el recibo queda bloqueado para edición/borrado, sin importar el
	// desenlace del traslado.
	Used      bool
	UpdatedAt time.Time
}
