package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/access"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	byKey map[string]*entity.Batch
}

func batchKey(warehouseID, itemID string, exp *expiration.Month) string {
	k := warehouseID + "|" + itemID + "|"
	if exp != nil {
		k += exp.String()
	}
	return k
}

func (f *fakeBatchRepo) Get(warehouseID, itemID string, exp *expiration.Month) (*entity.Batch, error) {
	if b, ok := f.byKey[batchKey(warehouseID, itemID, exp)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.Batch{WarehouseID: warehouseID, ItemID: itemID, Expiration: exp}, nil
}

func (f *fakeBatchRepo) GetForUpdate(warehouseID, itemID string, exp *expiration.Month) (*entity.Batch, error) {
	return f.Get(warehouseID, itemID, exp)
}

func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	for _, b := range f.byKey {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) { return f.GetByID(id) }

func (f *fakeBatchRepo) Upsert(b *entity.Batch) error {
	cp := *b
	f.byKey[batchKey(b.WarehouseID, b.ItemID, b.Expiration)] = &cp
	return nil
}

func (f *fakeBatchRepo) Delete(id string) error {
	for k, b := range f.byKey {
		if b.ID == id {
			delete(f.byKey, k)
		}
	}
	return nil
}

func (f *fakeBatchRepo) List(filter repository.BatchFilter) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.byKey {
		if filter.WarehouseID != "" && b.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.ItemID != "" && b.ItemID != filter.ItemID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	values map[string]string
}

func (f *fakeSettingsRepo) Get(key string) (string, error) { return f.values[key], nil }
func (f *fakeSettingsRepo) Set(key, value string) error {
	f.values[key] = value
	return nil
}
func (f *fakeSettingsRepo) All() (map[string]string, error) { return f.values, nil }

type fakeItemRepo struct {
	byID map[string]*entity.Item
}

func (f *fakeItemRepo) Create(it *entity.Item) error { f.byID[it.ID] = it; return nil }
func (f *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := f.byID[id]; ok {
		return it, nil
	}
	return nil, nil
}
func (f *fakeItemRepo) Update(it *entity.Item) error                   { f.byID[it.ID] = it; return nil }
func (f *fakeItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (f *fakeItemRepo) Delete(id string) error                         { delete(f.byID, id); return nil }

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.byID[w.ID] = w; return nil }
func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.byID[id]; ok {
		return w, nil
	}
	return nil, nil
}
func (f *fakeWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error)    { return nil, nil }
func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error                    { return nil }
func (f *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }
func (f *fakeWarehouseRepo) Delete(id string) error                              { return nil }

type fakeSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func (f *fakeSupplierRepo) Create(s *entity.Supplier) error { f.byID[s.ID] = s; return nil }
func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, nil
}
func (f *fakeSupplierRepo) Update(s *entity.Supplier) error                    { return nil }
func (f *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (f *fakeSupplierRepo) Delete(id string) error                             { return nil }

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(l *entity.AuditLog) error {
	f.entries = append(f.entries, l)
	return nil
}
func (f *fakeAuditRepo) List(limit, offset int) ([]*entity.AuditLog, error) { return f.entries, nil }

type fakeTxRunner struct {
	batches *fakeBatchRepo
	audit   *fakeAuditRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	batches repository.BatchRepository,
	transfers repository.TransferRepository,
	resolutions repository.ResolutionRepository,
	audit repository.AuditLogRepository,
) error) error {
	return fn(r.batches, nil, nil, r.audit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	batches  *fakeBatchRepo
	settings *fakeSettingsRepo
	uc       *inventory.UseCase
}

func admin() access.Grant {
	return access.Grant{Level: access.LevelAdmin}
}

func exp(t *testing.T, s string) *expiration.Month {
	t.Helper()
	m, err := expiration.ParseMonth(s)
	require.NoError(t, err)
	return &m
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	batches := &fakeBatchRepo{byKey: make(map[string]*entity.Batch)}
	settings := &fakeSettingsRepo{values: make(map[string]string)}
	audit := &fakeAuditRepo{}
	txRunner := &fakeTxRunner{batches: batches, audit: audit}

	items := &fakeItemRepo{byID: map[string]*entity.Item{
		"item-1": {ID: "item-1", Name: "Amoxicilina 500mg", HasExpiryDate: true},
		"item-2": {ID: "item-2", Name: "Jeringa 5ml", HasExpiryDate: false},
	}}
	warehouses := &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{
		"wh-1": {ID: "wh-1", Name: "Bodega Central", Code: "BC"},
		"wh-2": {ID: "wh-2", Name: "Bodega Norte", Code: "BN"},
	}}
	suppliers := &fakeSupplierRepo{byID: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Distribuidora Andina"},
	}}

	return &fixture{
		batches:  batches,
		settings: settings,
		uc:       inventory.NewUseCase(txRunner, batches, items, warehouses, suppliers, settings, 90),
	}
}

func (fx *fixture) seed(t *testing.T, id, warehouseID, itemID, expStr string, qty int64, used bool) {
	t.Helper()
	var m *expiration.Month
	if expStr != "" {
		m = exp(t, expStr)
	}
	require.NoError(t, fx.batches.Upsert(&entity.Batch{
		ID: id, WarehouseID: warehouseID, ItemID: itemID,
		Expiration: m, Quantity: qty, Used: used, UpdatedAt: time.Now(),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Availability
// ──────────────────────────────────────────────────────────────────────────────

func TestAvailability_OrdenFEFO(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-tarde", "wh-1", "item-1", "2027-06", 10, false)
	fx.seed(t, "b-pronto", "wh-1", "item-1", "2026-01", 20, false)
	fx.seed(t, "b-sin", "wh-1", "item-2", "", 5, false)

	rows, err := fx.uc.Availability(admin(), repository.BatchFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "b-pronto", rows[0].BatchID, "el que vence antes va primero")
	assert.Equal(t, "b-tarde", rows[1].BatchID)
	assert.Equal(t, "b-sin", rows[2].BatchID, "sin vencimiento al final")
	assert.Nil(t, rows[2].Expiration)
	assert.Nil(t, rows[2].DaysRemaining)
	assert.Equal(t, string(expiration.TierNone), rows[2].Tier)
}

func TestAvailability_OmiteLotesEnCero(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-1", "wh-1", "item-1", "2026-01", 20, false)
	fx.seed(t, "b-agotado", "wh-1", "item-1", "2026-03", 0, true)

	rows, err := fx.uc.Availability(admin(), repository.BatchFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b-1", rows[0].BatchID)
}

func TestAvailability_UmbralDesdeAjustes(t *testing.T) {
	fx := newFixture(t)
	soon := time.Now().AddDate(0, 1, 0)
	fx.seed(t, "b-1", "wh-1", "item-1", soon.Format("2006-01"), 10, false)

	// Con umbral de 1 día el lote de un mes queda healthy.
	require.NoError(t, fx.settings.Set(inventory.SettingWarningDays, "1"))
	rows, err := fx.uc.Availability(admin(), repository.BatchFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, string(expiration.TierHealthy), rows[0].Tier)

	// Con umbral de 365 días el mismo lote queda warning.
	require.NoError(t, fx.settings.Set(inventory.SettingWarningDays, "365"))
	rows, err = fx.uc.Availability(admin(), repository.BatchFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, string(expiration.TierWarning), rows[0].Tier)
}

func TestAvailability_LoteVencido(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-vencido", "wh-1", "item-1", "2024-01", 10, false)

	rows, err := fx.uc.Availability(admin(), repository.BatchFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, string(expiration.TierExpired), rows[0].Tier, "el stock vencido se muestra, no se oculta")
}

// El bodeguero solo ve sus bodegas otorgadas.
func TestAvailability_BodegueroFiltrado(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-1", "wh-1", "item-1", "2026-01", 20, false)
	fx.seed(t, "b-2", "wh-2", "item-1", "2026-01", 30, false)
	g := access.Grant{Level: access.LevelWarehouseman, WarehouseIDs: []string{"wh-2"}}

	_, err := fx.uc.Availability(g, repository.BatchFilter{WarehouseID: "wh-1"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	rows, err := fx.uc.Availability(g, repository.BatchFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "wh-2", rows[0].WarehouseID, "sin filtro solo aparecen sus bodegas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibos
// ──────────────────────────────────────────────────────────────────────────────

func TestAddReceipt_AcreditaElLote(t *testing.T) {
	fx := newFixture(t)
	expStr := "2026-05"
	supplierID := "sup-1"
	entryDate := "2025-11-02"

	b, err := fx.uc.AddReceipt(context.Background(), admin(), "user-1", dto.AddReceiptRequest{
		WarehouseID: "wh-1",
		ItemID:      "item-1",
		SupplierID:  &supplierID,
		Expiration:  &expStr,
		EntryDate:   &entryDate,
		Quantity:    100,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), b.Quantity)
	require.NotNil(t, b.SupplierID)
	assert.Equal(t, "sup-1", *b.SupplierID)
	require.NotNil(t, b.EntryDate)
	assert.Equal(t, "2025-11-02", b.EntryDate.Format("2006-01-02"))
}

func TestAddReceipt_ArticuloSinVencimientoLoProhibe(t *testing.T) {
	fx := newFixture(t)
	expStr := "2026-05"

	_, err := fx.uc.AddReceipt(context.Background(), admin(), "user-1", dto.AddReceiptRequest{
		WarehouseID: "wh-1",
		ItemID:      "item-2",
		Expiration:  &expStr,
		Quantity:    10,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddReceipt_ProveedorInexistente(t *testing.T) {
	fx := newFixture(t)
	expStr := "2026-05"
	supplierID := "sup-fantasma"

	_, err := fx.uc.AddReceipt(context.Background(), admin(), "user-1", dto.AddReceiptRequest{
		WarehouseID: "wh-1",
		ItemID:      "item-1",
		SupplierID:  &supplierID,
		Expiration:  &expStr,
		Quantity:    10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReceipt_CorrigeCantidad(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-1", "wh-1", "item-1", "2026-01", 20, false)
	qty := int64(25)

	b, err := fx.uc.UpdateReceipt(context.Background(), admin(), "user-1", "b-1", dto.UpdateReceiptRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(25), b.Quantity)
}

// Un lote que ya fue origen de un traslado queda protegido.
func TestUpdateReceipt_LoteUsadoProtegido(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-usado", "wh-1", "item-1", "2026-01", 20, true)
	qty := int64(25)

	_, err := fx.uc.UpdateReceipt(context.Background(), admin(), "user-1", "b-usado", dto.UpdateReceiptRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrProtectedRecord)
}

func TestDeleteReceipt_LoteUsadoProtegido(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-usado", "wh-1", "item-1", "2026-01", 20, true)

	err := fx.uc.DeleteReceipt(context.Background(), admin(), "user-1", "b-usado")
	assert.ErrorIs(t, err, domain.ErrProtectedRecord)
}

func TestDeleteReceipt_EliminaLoteNoUsado(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-1", "wh-1", "item-1", "2026-01", 20, false)

	require.NoError(t, fx.uc.DeleteReceipt(context.Background(), admin(), "user-1", "b-1"))
	assert.Empty(t, fx.batches.byKey)
}

func TestDeleteReceipt_BodegueroSinLaBodega(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t, "b-1", "wh-1", "item-1", "2026-01", 20, false)
	g := access.Grant{Level: access.LevelWarehouseman, WarehouseIDs: []string{"wh-2"}}

	err := fx.uc.DeleteReceipt(context.Background(), g, "user-1", "b-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
