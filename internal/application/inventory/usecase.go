// Package inventory expone la consulta de disponibilidad con clasificación de
// frescura y las operaciones de recibo de mercadería (entradas de stock).
package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
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

// SettingWarningDays clave del umbral de alerta de vencimiento en ajustes.
const SettingWarningDays = "exp_warning_days"

// UseCase consultas de disponibilidad y gestión de recibos.
type UseCase struct {
	txRunner    ledger.TxRunner
	batches     repository.BatchRepository // atado al pool, solo lecturas
	items       repository.ItemRepository
	warehouses  repository.WarehouseRepository
	suppliers   repository.SupplierRepository
	settings    repository.SettingsRepository
	defaultDays int // umbral por defecto cuando el ajuste no existe
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ledger.TxRunner,
	batches repository.BatchRepository,
	items repository.ItemRepository,
	warehouses repository.WarehouseRepository,
	suppliers repository.SupplierRepository,
	settings repository.SettingsRepository,
	defaultWarningDays int,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		batches:     batches,
		items:       items,
		warehouses:  warehouses,
		suppliers:   suppliers,
		settings:    settings,
		defaultDays: defaultWarningDays,
	}
}

// warningDays lee el umbral de alerta desde ajustes, con valor por defecto.
func (uc *UseCase) warningDays() int {
	raw, err := uc.settings.Get(SettingWarningDays)
	if err != nil || raw == "" {
		return uc.defaultDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return uc.defaultDays
	}
	return days
}

// Availability devuelve los lotes con existencia que cumplen el filtro, en
// orden FEFO y con el tier de frescura calculado a hoy. Un warehouseman solo
// puede consultar sus bodegas otorgadas.
func (uc *UseCase) Availability(grant access.Grant, filter repository.BatchFilter) ([]dto.AvailabilityRow, error) {
	if filter.WarehouseID != "" && grant.Level == access.LevelWarehouseman && !grant.CanAccessWarehouse(filter.WarehouseID) {
		return nil, fmt.Errorf("%w: sin acceso a la bodega %s", domain.ErrPermissionDenied, filter.WarehouseID)
	}
	batches, err := uc.batches.List(filter)
	if err != nil {
		return nil, err
	}
	if grant.Level == access.LevelWarehouseman && filter.WarehouseID == "" {
		batches = filterGranted(batches, grant)
	}

	sort.SliceStable(batches, func(i, j int) bool {
		return expiration.Less(batches[i].Expiration, batches[j].Expiration)
	})

	today := time.Now()
	days := uc.warningDays()
	out := make([]dto.AvailabilityRow, 0, len(batches))
	for _, b := range batches {
		if b.Quantity == 0 {
			continue
		}
		row := dto.AvailabilityRow{
			BatchID:     b.ID,
			WarehouseID: b.WarehouseID,
			ItemID:      b.ItemID,
			SupplierID:  b.SupplierID,
			Quantity:    b.Quantity,
			Tier:        string(expiration.Classify(b.Expiration, today, days)),
			Used:        b.Used,
		}
		if b.Expiration != nil {
			s := b.Expiration.String()
			row.Expiration = &s
			d := b.Expiration.DaysRemaining(today)
			row.DaysRemaining = &d
		}
		out = append(out, row)
	}
	return out, nil
}

// AddReceipt registra una entrada de mercadería: acredita el lote
// correspondiente y fija proveedor y fecha de entrada.
func (uc *UseCase) AddReceipt(ctx context.Context, grant access.Grant, userID string, in dto.AddReceiptRequest) (*dto.BatchResponse, error) {
	if !grant.CanMutate() {
		return nil, fmt.Errorf("%w: el nivel %s no puede registrar recibos", domain.ErrPermissionDenied, grant.Level)
	}
	if !grant.CanAccessWarehouse(in.WarehouseID) {
		return nil, fmt.Errorf("%w: sin acceso a la bodega %s", domain.ErrPermissionDenied, in.WarehouseID)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad recibida debe ser mayor que cero", domain.ErrInvalidQuantity)
	}

	wh, err := uc.warehouses.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
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
	if in.SupplierID != nil {
		s, err := uc.suppliers.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, *in.SupplierID)
		}
	}
	entryDate, err := parseEntryDate(in.EntryDate)
	if err != nil {
		return nil, err
	}

	var out *entity.Batch
	err = uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		_ repository.TransferRepository,
		_ repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		led := ledger.New(batches)
		b, err := led.Credit(in.WarehouseID, in.ItemID, exp, in.Quantity, in.SupplierID)
		if err != nil {
			return err
		}
		if entryDate != nil {
			b.EntryDate = entryDate
			if err := batches.Upsert(b); err != nil {
				return err
			}
		}
		out = b
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Add Receipt",
			Details:   fmt.Sprintf("recibo: %d de %s en bodega %s", in.Quantity, in.ItemID, in.WarehouseID),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(out), nil
}

// UpdateReceipt corrige un recibo: cantidad, proveedor o fecha de entrada.
// Un lote que ya fue origen de un traslado queda protegido y no admite edición.
func (uc *UseCase) UpdateReceipt(ctx context.Context, grant access.Grant, userID, batchID string, in dto.UpdateReceiptRequest) (*dto.BatchResponse, error) {
	if !grant.CanMutate() {
		return nil, fmt.Errorf("%w: el nivel %s no puede editar recibos", domain.ErrPermissionDenied, grant.Level)
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidQuantity)
	}
	entryDate, err := parseEntryDate(in.EntryDate)
	if err != nil {
		return nil, err
	}

	var out *entity.Batch
	err = uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		_ repository.TransferRepository,
		_ repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		b, err := batches.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, batchID)
		}
		if !grant.CanAccessWarehouse(b.WarehouseID) {
			return fmt.Errorf("%w: sin acceso a la bodega %s", domain.ErrPermissionDenied, b.WarehouseID)
		}
		if b.Used {
			return fmt.Errorf("%w: el lote ya fue origen de un traslado y no admite edición", domain.ErrProtectedRecord)
		}
		if in.Quantity != nil {
			b.Quantity = *in.Quantity
		}
		if in.SupplierID != nil {
			b.SupplierID = in.SupplierID
		}
		if entryDate != nil {
			b.EntryDate = entryDate
		}
		b.UpdatedAt = time.Now()
		if err := batches.Upsert(b); err != nil {
			return err
		}
		out = b
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Update Receipt",
			Details:   fmt.Sprintf("lote %s corregido", b.ID),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(out), nil
}

// DeleteReceipt elimina un recibo no usado, descartando su existencia.
func (uc *UseCase) DeleteReceipt(ctx context.Context, grant access.Grant, userID, batchID string) error {
	if !grant.CanMutate() {
		return fmt.Errorf("%w: el nivel %s no puede eliminar recibos", domain.ErrPermissionDenied, grant.Level)
	}
	return uc.txRunner.Run(ctx, func(
		batches repository.BatchRepository,
		_ repository.TransferRepository,
		_ repository.ResolutionRepository,
		audit repository.AuditLogRepository,
	) error {
		b, err := batches.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, batchID)
		}
		if !grant.CanAccessWarehouse(b.WarehouseID) {
			return fmt.Errorf("%w: sin acceso a la bodega %s", domain.ErrPermissionDenied, b.WarehouseID)
		}
		if b.Used {
			return fmt.Errorf("%w: el lote ya fue origen de un traslado y no admite borrado", domain.ErrProtectedRecord)
		}
		if err := batches.Delete(b.ID); err != nil {
			return err
		}
		return audit.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Delete Receipt",
			Details:   fmt.Sprintf("lote %s eliminado (%d de %s en bodega %s)", b.ID, b.Quantity, b.ItemID, b.WarehouseID),
			CreatedAt: time.Now(),
		})
	})
}

func filterGranted(batches []*entity.Batch, grant access.Grant) []*entity.Batch {
	out := batches[:0]
	for _, b := range batches {
		for _, id := range grant.WarehouseIDs {
			if id == b.WarehouseID {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

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

func parseEntryDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: entry_date debe ser YYYY-MM-DD", domain.ErrValidation)
	}
	return &t, nil
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	resp := &dto.BatchResponse{
		ID:          b.ID,
		WarehouseID: b.WarehouseID,
		ItemID:      b.ItemID,
		SupplierID:  b.SupplierID,
		EntryDate:   b.EntryDate,
		Quantity:    b.Quantity,
		Used:        b.Used,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Expiration != nil {
		s := b.Expiration.String()
		resp.Expiration = &s
	}
	return resp
}
