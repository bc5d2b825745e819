package repository

import (
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
)

// BatchFilter filtros opcionales para listar lotes. Campo vacío = sin filtro.
type BatchFilter struct {
	WarehouseID string
	ItemID      string
}

// BatchRepository define el puerto de persistencia del ledger de lotes.
// Get/GetForUpdate devuelven un lote con Quantity 0 (ID vacío) si no existe la
// fila, para que el ledger trate "sin lote" y "lote en cero" de la misma forma.
type BatchRepository interface {
	Get(warehouseID, itemID string, exp *expiration.Month) (*entity.Batch, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) para serializar
	// mutaciones concurrentes del mismo lote.
	GetForUpdate(warehouseID, itemID string, exp *expiration.Month) (*entity.Batch, error)
	GetByID(id string) (*entity.Batch, error)
	GetByIDForUpdate(id string) (*entity.Batch, error)
	Upsert(batch *entity.Batch) error
	Delete(id string) error
	List(filter BatchFilter) ([]*entity.Batch, error)
}
