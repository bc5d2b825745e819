// Package ledger implementa el libro de inventario: toda mutación de stock
// (recibos, traslados, resoluciones) pasa por Debit/Credit sobre lotes
// identificados por (bodega, artículo, vencimiento). Las operaciones asumen
// repositorios atados a una transacción abierta; el bloqueo de fila
// (SELECT ... FOR UPDATE) serializa los accesos concurrentes al mismo lote.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Ledger opera sobre un BatchRepository, normalmente el atado a la tx en curso.
type Ledger struct {
	batches repository.BatchRepository
}

// New construye el ledger sobre el repositorio dado.
func New(batches repository.BatchRepository) *Ledger {
	return &Ledger{batches: batches}
}

// Debit resta qty del lote identificado. Falla con ErrInsufficientStock si el
// lote no alcanza, sin aplicar nada. markUsed deja el lote marcado como origen
// de traslado (bloquea la edición del recibo de forma permanente).
// Un lote que llega a cero se poda, salvo que esté marcado usado: esa fila se
// retiene como constancia.
func (l *Ledger) Debit(warehouseID, itemID string, exp *expiration.Month, qty int64, markUsed bool) (*entity.Batch, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: el débito debe ser mayor que cero (%d)", domain.ErrInvalidQuantity, qty)
	}
	b, err := l.batches.GetForUpdate(warehouseID, itemID, exp)
	if err != nil {
		return nil, err
	}
	if b.Quantity < qty {
		return nil, fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, qty, b.Quantity)
	}
	b.Quantity -= qty
	if markUsed {
		b.Used = true
	}
	b.UpdatedAt = time.Now()

	if b.Quantity == 0 && !b.Used {
		if err := l.batches.Delete(b.ID); err != nil {
			return nil, err
		}
		return b, nil
	}
	if err := l.batches.Upsert(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Credit suma qty al lote identificado, creándolo si no existe. supplierID,
// si viene, queda registrado en el lote.
func (l *Ledger) Credit(warehouseID, itemID string, exp *expiration.Month, qty int64, supplierID *string) (*entity.Batch, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: el crédito debe ser mayor que cero (%d)", domain.ErrInvalidQuantity, qty)
	}
	b, err := l.batches.GetForUpdate(warehouseID, itemID, exp)
	if err != nil {
		return nil, err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if supplierID != nil {
		b.SupplierID = supplierID
	}
	b.Quantity += qty
	b.UpdatedAt = time.Now()
	if err := l.batches.Upsert(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Available devuelve la cantidad disponible del lote exacto, sin bloquear.
func (l *Ledger) Available(warehouseID, itemID string, exp *expiration.Month) (int64, error) {
	b, err := l.batches.Get(warehouseID, itemID, exp)
	if err != nil {
		return 0, err
	}
	return b.Quantity, nil
}

// Query devuelve los lotes que cumplen el filtro, para asignación y reportes.
func (l *Ledger) Query(filter repository.BatchFilter) ([]*entity.Batch, error) {
	return l.batches.List(filter)
}
