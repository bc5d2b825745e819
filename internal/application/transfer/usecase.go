// Package transfer implementa el motor de traslados: máquina de estados
// pending -> {confirmed, rejected} sobre el ledger de lotes. Todo efecto de
// stock ocurre dentro de una transacción con la fila del traslado bloqueada.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/ledger"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/access"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// UseCase orquesta creación, confirmación, rechazo y eliminación de traslados.
type UseCase struct {
	txRunner   ledger.TxRunner
	items      repository.ItemRepository
	warehouses repository.WarehouseRepository
	consumers  repository.ConsumerRepository
	transfers  repository.TransferRepository // atado al pool, solo lecturas
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ledger.TxRunner,
	items repository.ItemRepository,
	warehouses repository.WarehouseRepository,
	consumers repository.ConsumerRepository,
	transfers repository.TransferRepository,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		items:      items,
		warehouses: warehouses,
		consumers:  consumers,
		transfers:  transfers,
	}
}

// Create valida y registra un traslado en estado pending. Atómicamente debita
// la bodega origen, marca el lote como usado y persiste el registro: mientras
// esté pending, la cantidad enviada está "en tránsito" (debitada del origen y
// no acreditada en ningún destino).
func (uc *UseCase) Create(ctx context.Context, grant access.Grant, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	switch in.TransferType {
	case entity.TransferTypeWarehouse:
		if in.DestinationWarehouseID == nil || *in.DestinationWarehouseID == "" || in.ConsumerID != nil {
			return nil, fmt.Errorf("%w: traslado entre bodegas requiere destination_warehouse_id y sin consumer_id", domain.ErrValidation)
		}
		if *in.DestinationWarehouseID == in.SourceWarehouseID {
			return nil, fmt.Errorf("%w: la bodega destino no puede ser la misma que la origen", domain.ErrValidation)
		}
	case entity.TransferTypeConsumer:
		if in.ConsumerID == nil || *in.ConsumerID == "" || in.DestinationWarehouseID != nil {
			return nil, fmt.Errorf("%w: traslado a consumidor requiere consumer_id y sin destination_warehouse_id", domain.ErrValidation)
		}
	case entity.TransferTypeDisposal:
		if in.DestinationWarehouseID != nil || in.ConsumerID != nil {
			return nil, fmt.Errorf("%w: un traslado de baja no lleva destino", domain.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: tipo de traslado desconocido %q", domain.ErrValidation, in.TransferType)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a trasladar debe ser mayor que cero", domain.ErrInvalidQuantity)
	}
	if in.SourceWarehouseID == "" || in.ItemID == "" {
		return nil, fmt.Errorf("%w: source_warehouse_id e item_id son obligatorios", domain.ErrValidation)
	}

	if !grant.CanMutate() {
		return nil, fmt.Errorf("%w: el nivel %s no puede crear traslados", domain.ErrPermissionDenied, grant.Level)
	}
	if !grant.CanAccessWarehouse(in.SourceWarehouseID) {
		return nil, fmt.Errorf("%w: sin acceso a la bodega origen", domain.ErrPermissionDenied)
	}

	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, in.ItemID)
	}
	exp, err := parseExpiration(item, in.Expiration)
	if err != nil {
		return nil, err
	}
	if err := uc.checkDestinations(in); err != nil {
		return nil, err
	}

	transferDate := time.Now()
	if in.TransferDate != "" {
		transferDate, err = time.Parse("2006-01-02", in.TransferDate)
		if err != nil {
			return nil, fmt.Errorf("%w: transfer_date debe ser YYYY-MM-DD", domain.ErrValidation)
		}
	}

	t := &entity.Transfer{
		ID:                     uuid.New().String(),
		Type:                   in.TransferType,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		ConsumerID:             in.ConsumerID,
		ItemID:                 in.ItemID,
		Expiration:             exp,
		QuantitySent:           in.Quantity,
		Status:                 entity.TransferStatusPending,
		TransferDate:           transferDate,
		Notes:                  in.Notes,
		CreatedBy:              userID,
		CreatedAt:              time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		transfers repository.TransferRepository,
		_ repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		led := ledger.New(batches)
		b, err := led.Debit(in.SourceWarehouseID, in.ItemID, exp, in.Quantity, true)
		if err != nil {
			return err
		}
		// El proveedor del lote origen acompaña al traslado para los créditos
		// posteriores (confirmación, rechazo, resolución).
		t.SupplierID = b.SupplierID
		if err := transfers.Create(t); err != nil {
			return err
		}
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Create Transfer",
			Details:   fmt.Sprintf("traslado %s: %d de %s desde bodega %s", t.ID, t.QuantitySent, t.ItemID, t.SourceWarehouseID),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(t), nil
}

// Confirm aplica la recepción de un traslado pending. Para type warehouse
// acredita la cantidad recibida en destino; para consumer solo la registra;
// para disposal no acredita nada y la totalidad de lo enviado queda dada de
// baja, sin importar el valor reportado. Si se recibe menos de lo enviado el
// faltante queda sin acreditar como discrepancia abierta.
func (uc *UseCase) Confirm(ctx context.Context, grant access.Grant, userID, transferID string, in dto.ConfirmTransferRequest) (*dto.TransferResponse, error) {
	if !grant.CanMutate() {
		return nil, fmt.Errorf("%w: el nivel %s no puede confirmar traslados", domain.ErrPermissionDenied, grant.Level)
	}

	var out *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		transfers repository.TransferRepository,
		_ repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		t, err := transfers.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
		}
		if t.Status != entity.TransferStatusPending {
			return fmt.Errorf("%w: solo un traslado pending puede confirmarse (estado actual: %s)", domain.ErrInvalidStateTransition, t.Status)
		}
		if in.QuantityReceived <= 0 || in.QuantityReceived > t.QuantitySent {
			return fmt.Errorf("%w: recibido %d, debe cumplir 0 < recibido <= %d", domain.ErrInvalidQuantity, in.QuantityReceived, t.QuantitySent)
		}
		// El acceso al destino solo se exige cuando el destino es una bodega;
		// entregas a consumidor y bajas no tienen bodega receptora.
		if t.Type == entity.TransferTypeWarehouse {
			if !grant.CanAccessWarehouse(*t.DestinationWarehouseID) {
				return fmt.Errorf("%w: sin acceso a la bodega destino", domain.ErrPermissionDenied)
			}
			led := ledger.New(batches)
			if _, err := led.Credit(*t.DestinationWarehouseID, t.ItemID, t.Expiration, in.QuantityReceived, t.SupplierID); err != nil {
				return err
			}
		}

		now := time.Now()
		received := in.QuantityReceived
		t.QuantityReceived = &received
		t.Status = entity.TransferStatusConfirmed
		t.ConfirmedAt = &now
		if err := transfers.Update(t); err != nil {
			return err
		}
		out = t
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Confirm Transfer",
			Details:   fmt.Sprintf("traslado %s: recibidos %d de %d enviados", t.ID, received, t.QuantitySent),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(out), nil
}

// Reject devuelve un traslado pending: acredita la totalidad de lo enviado de
// vuelta en la bodega origen y marca el registro como rejected (inmutable).
func (uc *UseCase) Reject(ctx context.Context, grant access.Grant, userID, transferID string) (*dto.TransferResponse, error) {
	if !grant.CanMutate() {
		return nil, fmt.Errorf("%w: el nivel %s no puede rechazar traslados", domain.ErrPermissionDenied, grant.Level)
	}

	var out *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		transfers repository.TransferRepository,
		_ repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		t, err := uc.restockPending(batches, transfers, grant, transferID)
		if err != nil {
			return err
		}
		now := time.Now()
		t.Status = entity.TransferStatusRejected
		t.ConfirmedAt = &now
		if err := transfers.Update(t); err != nil {
			return err
		}
		out = t
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Reject Transfer",
			Details:   fmt.Sprintf("traslado %s rechazado, %d devueltos a bodega %s", t.ID, t.QuantitySent, t.SourceWarehouseID),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(out), nil
}

// Delete elimina un traslado pending restituyendo el stock al origen, igual
// que Reject, pero borrando el registro. Un traslado confirmado o rechazado
// está protegido y no puede eliminarse.
func (uc *UseCase) Delete(ctx context.Context, grant access.Grant, userID, transferID string) error {
	if !grant.CanMutate() {
		return fmt.Errorf("%w: el nivel %s no puede eliminar traslados", domain.ErrPermissionDenied, grant.Level)
	}

	return uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		transfers repository.TransferRepository,
		_ repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		t, err := transfers.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
		}
		if t.Status != entity.TransferStatusPending {
			return fmt.Errorf("%w: un traslado %s no puede eliminarse", domain.ErrProtectedRecord, t.Status)
		}
		if !grant.CanAccessWarehouse(t.SourceWarehouseID) {
			return fmt.Errorf("%w: sin acceso a la bodega origen", domain.ErrPermissionDenied)
		}
		led := ledger.New(batches)
		if _, err := led.Credit(t.SourceWarehouseID, t.ItemID, t.Expiration, t.QuantitySent, t.SupplierID); err != nil {
			return err
		}
		if err := transfers.Delete(t.ID); err != nil {
			return err
		}
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Delete Transfer",
			Details:   fmt.Sprintf("traslado %s eliminado, %d restituidos a bodega %s", t.ID, t.QuantitySent, t.SourceWarehouseID),
			CreatedAt: time.Now(),
		})
	})
}

// restockPending bloquea el traslado, valida que siga pending y acredita la
// totalidad de lo enviado de vuelta en la bodega origen.
func (uc *UseCase) restockPending(
	batches repository.BatchRepository,
	transfers repository.TransferRepository,
	grant access.Grant,
	transferID string,
) (*entity.Transfer, error) {
	t, err := transfers.GetByIDForUpdate(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
	}
	if t.Status != entity.TransferStatusPending {
		return nil, fmt.Errorf("%w: solo un traslado pending puede rechazarse (estado actual: %s)", domain.ErrInvalidStateTransition, t.Status)
	}
	if !grant.CanAccessWarehouse(t.SourceWarehouseID) {
		return nil, fmt.Errorf("%w: sin acceso a la bodega origen", domain.ErrPermissionDenied)
	}
	led := ledger.New(batches)
	if _, err := led.Credit(t.SourceWarehouseID, t.ItemID, t.Expiration, t.QuantitySent, t.SupplierID); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID devuelve un traslado.
func (uc *UseCase) GetByID(id string) (*dto.TransferResponse, error) {
	t, err := uc.transfers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	return ToResponse(t), nil
}

// ListPending lista los traslados en espera de confirmación.
func (uc *UseCase) ListPending(limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transfers.ListByStatus(entity.TransferStatusPending, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListAll lista todos los traslados.
func (uc *UseCase) ListAll(limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transfers.ListAll(limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// transitPageLimit tope de traslados pending considerados para la vista de
// tránsito; los pendientes se cuentan en decenas, no en miles.
const transitPageLimit = 1000

// Transit agrega la cantidad en tránsito (traslados pending) por artículo y
// vencimiento. Reemplaza a la antigua bodega virtual de tránsito: el stock en
// camino existe solo como registros pending.
func (uc *UseCase) Transit() ([]dto.TransitRow, error) {
	pending, err := uc.transfers.ListByStatus(entity.TransferStatusPending, transitPageLimit, 0)
	if err != nil {
		return nil, err
	}
	type key struct {
		itemID string
		exp    string
	}
	sums := make(map[key]*dto.TransitRow)
	order := make([]key, 0, len(pending))
	for _, t := range pending {
		k := key{itemID: t.ItemID}
		if t.Expiration != nil {
			k.exp = t.Expiration.String()
		}
		row, ok := sums[k]
		if !ok {
			row = &dto.TransitRow{ItemID: t.ItemID, Expiration: expirationString(t.Expiration)}
			sums[k] = row
			order = append(order, k)
		}
		row.Quantity += t.QuantitySent
		row.Transfers++
	}
	out := make([]dto.TransitRow, 0, len(order))
	for _, k := range order {
		out = append(out, *sums[k])
	}
	return out, nil
}

// checkDestinations valida la existencia de bodegas y consumidor según el tipo.
func (uc *UseCase) checkDestinations(in dto.CreateTransferRequest) error {
	src, err := uc.warehouses.GetByID(in.SourceWarehouseID)
	if err != nil {
		return err
	}
	if src == nil {
		return fmt.Errorf("%w: bodega origen %s", domain.ErrNotFound, in.SourceWarehouseID)
	}
	if in.TransferType == entity.TransferTypeWarehouse {
		dst, err := uc.warehouses.GetByID(*in.DestinationWarehouseID)
		if err != nil {
			return err
		}
		if dst == nil {
			return fmt.Errorf("%w: bodega destino %s", domain.ErrNotFound, *in.DestinationWarehouseID)
		}
	}
	if in.TransferType == entity.TransferTypeConsumer {
		c, err := uc.consumers.GetByID(*in.ConsumerID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: consumidor %s", domain.ErrNotFound, *in.ConsumerID)
		}
	}
	return nil
}

// parseExpiration valida la coherencia vencimiento/artículo y parsea YYYY-MM.
// Un artículo con HasExpiryDate exige vencimiento; uno sin él lo prohíbe.
func parseExpiration(item *entity.Item, raw *string) (*expiration.Month, error) {
	if item.HasExpiryDate {
		if raw == nil || *raw == "" {
			return nil, fmt.Errorf("%w: el artículo %s exige fecha de vencimiento", domain.ErrValidation, item.Name)
		}
		m, err := expiration.ParseMonth(*raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return &m, nil
	}
	if raw != nil && *raw != "" {
		return nil, fmt.Errorf("%w: el artículo %s no maneja fecha de vencimiento", domain.ErrValidation, item.Name)
	}
	return nil, nil
}

// ToResponse mapea la entidad al DTO HTTP.
func ToResponse(t *entity.Transfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:                     t.ID,
		TransferType:           t.Type,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		ConsumerID:             t.ConsumerID,
		ItemID:                 t.ItemID,
		Expiration:             expirationString(t.Expiration),
		QuantitySent:           t.QuantitySent,
		QuantityReceived:       t.QuantityReceived,
		Status:                 t.Status,
		TransferDate:           t.TransferDate,
		Notes:                  t.Notes,
		CreatedBy:              t.CreatedBy,
		CreatedAt:              t.CreatedAt,
		ConfirmedAt:            t.ConfirmedAt,
	}
}

func toListResponse(list []*entity.Transfer, limit, offset int) *dto.TransferListResponse {
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *ToResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}
}

func expirationString(m *expiration.Month) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}
