// Package mismatch implementa el resolutor de discrepancias: traslados
// confirmados donde se recibió menos de lo enviado. La discrepancia no es un
// estado del traslado sino una condición derivada; registrar la resolución
// cierra el caso y aplica el efecto de stock correspondiente al faltante.
package mismatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/ledger"
	"github.com/tu-usuario/almacen-pro/internal/application/transfer"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/access"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// UseCase lista y resuelve discrepancias abiertas.
type UseCase struct {
	txRunner    ledger.TxRunner
	transfers   repository.TransferRepository   // atado al pool, solo lecturas
	resolutions repository.ResolutionRepository // idem
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ledger.TxRunner, transfers repository.TransferRepository, resolutions repository.ResolutionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, transfers: transfers, resolutions: resolutions}
}

// ListOpenCases devuelve los traslados confirmados con faltante y sin
// resolución registrada, con la cantidad faltante calculada.
func (uc *UseCase) ListOpenCases() ([]dto.MismatchCaseResponse, error) {
	open, err := uc.transfers.ListOpenMismatches()
	if err != nil {
		return nil, err
	}
	out := make([]dto.MismatchCaseResponse, 0, len(open))
	for _, t := range open {
		out = append(out, dto.MismatchCaseResponse{
			Transfer:     *transfer.ToResponse(t),
			ShortfallQty: t.Shortfall(),
		})
	}
	return out, nil
}

// GetResolution devuelve la resolución registrada para un traslado, si existe.
func (uc *UseCase) GetResolution(transferID string) (*dto.ResolutionResponse, error) {
	r, err := uc.resolutions.GetByTransferID(transferID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: sin resolución para el traslado %s", domain.ErrNotFound, transferID)
	}
	return toResolutionResponse(r), nil
}

// Resolve cierra la discrepancia de un traslado aplicando una de tres acciones
// sobre el faltante: delete lo da de baja sin crédito, return_source lo
// acredita de vuelta en la bodega origen, add_destination lo acredita en la
// bodega destino (solo traslados entre bodegas). Las notas son obligatorias y
// cada discrepancia se resuelve a lo sumo una vez.
func (uc *UseCase) Resolve(ctx context.Context, grant access.Grant, userID, transferID string, in dto.ResolveMismatchRequest) (*dto.ResolutionResponse, error) {
	if strings.TrimSpace(in.Notes) == "" {
		return nil, fmt.Errorf("%w: toda resolución debe explicar qué pasó con el faltante", domain.ErrNotesRequired)
	}
	switch in.Action {
	case entity.ResolutionActionDelete, entity.ResolutionActionReturnSource, entity.ResolutionActionAddDestination:
	default:
		return nil, fmt.Errorf("%w: acción de resolución desconocida %q", domain.ErrValidation, in.Action)
	}
	if !grant.CanMutate() {
		return nil, fmt.Errorf("%w: el nivel %s no puede resolver discrepancias", domain.ErrPermissionDenied, grant.Level)
	}

	var out *entity.MismatchResolution
	err := uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		transfers repository.TransferRepository,
		resolutions repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		t, err := transfers.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
		}
		if t.Status != entity.TransferStatusConfirmed {
			return fmt.Errorf("%w: solo un traslado confirmado puede tener discrepancia (estado actual: %s)", domain.ErrInvalidStateTransition, t.Status)
		}
		if !t.IsMismatch() {
			return fmt.Errorf("%w: el traslado %s no tiene faltante", domain.ErrInvalidStateTransition, t.ID)
		}
		existing, err := resolutions.GetByTransferID(t.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: traslado %s, resuelto el %s", domain.ErrAlreadyResolved, t.ID, existing.ResolvedAt.Format("2006-01-02"))
		}

		shortfall := t.Shortfall()
		led := ledger.New(batches)
		switch in.Action {
		case entity.ResolutionActionDelete:
			// El faltante queda dado de baja; ninguna bodega lo recupera.
		case entity.ResolutionActionReturnSource:
			if !grant.CanAccessWarehouse(t.SourceWarehouseID) {
				return fmt.Errorf("%w: sin acceso a la bodega origen", domain.ErrPermissionDenied)
			}
			if _, err := led.Credit(t.SourceWarehouseID, t.ItemID, t.Expiration, shortfall, t.SupplierID); err != nil {
				return err
			}
		case entity.ResolutionActionAddDestination:
			if t.Type != entity.TransferTypeWarehouse {
				return fmt.Errorf("%w: un traslado %s no tiene bodega destino", domain.ErrActionNotApplicable, t.Type)
			}
			if !grant.CanAccessWarehouse(*t.DestinationWarehouseID) {
				return fmt.Errorf("%w: sin acceso a la bodega destino", domain.ErrPermissionDenied)
			}
			if _, err := led.Credit(*t.DestinationWarehouseID, t.ItemID, t.Expiration, shortfall, t.SupplierID); err != nil {
				return err
			}
		}

		now := time.Now()
		r := &entity.MismatchResolution{
			ID:           uuid.New().String(),
			TransferID:   t.ID,
			Action:       in.Action,
			ShortfallQty: shortfall,
			Notes:        in.Notes,
			ResolvedBy:   userID,
			ResolvedAt:   now,
		}
		if err := resolutions.Create(r); err != nil {
			return err
		}
		out = r
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Resolve Mismatch",
			Details:   fmt.Sprintf("traslado %s: faltante de %d resuelto con %s", t.ID, shortfall, in.Action),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toResolutionResponse(out), nil
}

func toResolutionResponse(r *entity.MismatchResolution) *dto.ResolutionResponse {
	return &dto.ResolutionResponse{
		ID:           r.ID,
		TransferID:   r.TransferID,
		Action:       r.Action,
		ShortfallQty: r.ShortfallQty,
		Notes:        r.Notes,
		ResolvedBy:   r.ResolvedBy,
		ResolvedAt:   r.ResolvedAt,
	}
}
