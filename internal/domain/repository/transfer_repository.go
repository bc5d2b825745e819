package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetByIDForUpdate bloquea la fila del traslado para que dos confirmaciones
	// concurrentes no apliquen el crédito dos veces.
	GetByIDForUpdate(id string) (*entity.Transfer, error)
	Update(t *entity.Transfer) error
	Delete(id string) error
	ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error)
	ListAll(limit, offset int) ([]*entity.Transfer, error)
	// ListOpenMismatches traslados confirmados no-disposal con
	// quantity_received <> quantity_sent y sin resolución registrada.
	ListOpenMismatches() ([]*entity.Transfer, error)
}
