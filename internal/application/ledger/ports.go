package ledger

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que débito + registro (o crédito +
// cambio de estado) se apliquen todo-o-nada: nunca queda un traslado sin su
// débito ni un crédito aplicado dos veces.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batches repository.BatchRepository,
		transfers repository.TransferRepository,
		resolutions repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error) error
}
