package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// ResolutionRepository define el puerto de persistencia para resoluciones de
// discrepancia. La tabla tiene UNIQUE(transfer_id): la idempotencia del
// resolver se apoya en esa restricción además del chequeo previo.
type ResolutionRepository interface {
	Create(r *entity.MismatchResolution) error
	GetByTransferID(transferID string) (*entity.MismatchResolution, error)
	List(limit, offset int) ([]*entity.MismatchResolution, error)
}
