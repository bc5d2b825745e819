package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/ledger"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del repositorio de lotes
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	byKey map[string]*entity.Batch
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{byKey: make(map[string]*entity.Batch)}
}

func key(warehouseID, itemID string, exp *expiration.Month) string {
	k := warehouseID + "|" + itemID + "|"
	if exp != nil {
		k += exp.String()
	}
	return k
}

func (f *fakeBatchRepo) Get(warehouseID, itemID string, exp *expiration.Month) (*entity.Batch, error) {
	if b, ok := f.byKey[key(warehouseID, itemID, exp)]; ok {
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

func (f *fakeBatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	return f.GetByID(id)
}

func (f *fakeBatchRepo) Upsert(b *entity.Batch) error {
	cp := *b
	f.byKey[key(b.WarehouseID, b.ItemID, b.Expiration)] = &cp
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

func exp(t *testing.T, s string) *expiration.Month {
	t.Helper()
	m, err := expiration.ParseMonth(s)
	require.NoError(t, err)
	return &m
}

// ──────────────────────────────────────────────────────────────────────────────
// Credit
// ──────────────────────────────────────────────────────────────────────────────

func TestCredit_CreaLoteSiNoExiste(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)

	b, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 100, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID, "el lote nuevo recibe ID")
	assert.Equal(t, int64(100), b.Quantity)

	avail, err := led.Available("wh-1", "item-1", exp(t, "2025-06"))
	require.NoError(t, err)
	assert.Equal(t, int64(100), avail)
}

func TestCredit_AcumulaSobreLoteExistente(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)

	_, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 60, nil)
	require.NoError(t, err)
	b, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 40, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), b.Quantity)
}

func TestCredit_CantidadInvalida(t *testing.T) {
	led := ledger.New(newFakeBatchRepo())
	_, err := led.Credit("wh-1", "item-1", nil, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = led.Credit("wh-1", "item-1", nil, -5, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Debit
// ──────────────────────────────────────────────────────────────────────────────

func TestDebit_RestaDelLote(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)
	_, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 100, nil)
	require.NoError(t, err)

	b, err := led.Debit("wh-1", "item-1", exp(t, "2025-06"), 40, false)
	require.NoError(t, err)
	assert.Equal(t, int64(60), b.Quantity)
}

func TestDebit_StockInsuficienteNoAplicaNada(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)
	_, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 30, nil)
	require.NoError(t, err)

	_, err = led.Debit("wh-1", "item-1", exp(t, "2025-06"), 40, false)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	avail, err := led.Available("wh-1", "item-1", exp(t, "2025-06"))
	require.NoError(t, err)
	assert.Equal(t, int64(30), avail, "el débito fallido no debe tocar el lote")
}

func TestDebit_LoteInexistenteEsStockInsuficiente(t *testing.T) {
	led := ledger.New(newFakeBatchRepo())
	_, err := led.Debit("wh-1", "item-1", exp(t, "2025-06"), 1, false)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestDebit_PodaElLoteEnCero(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)
	_, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 50, nil)
	require.NoError(t, err)

	_, err = led.Debit("wh-1", "item-1", exp(t, "2025-06"), 50, false)
	require.NoError(t, err)

	assert.Empty(t, repo.byKey, "el lote en cero sin marcar usado se poda")
}

func TestDebit_LoteUsadoEnCeroSeRetiene(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)
	_, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 50, nil)
	require.NoError(t, err)

	b, err := led.Debit("wh-1", "item-1", exp(t, "2025-06"), 50, true)
	require.NoError(t, err)
	assert.True(t, b.Used)
	assert.Len(t, repo.byKey, 1, "el lote usado se retiene como constancia aun en cero")
}

func TestDebit_MarcaUsadoPermanente(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)
	_, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 100, nil)
	require.NoError(t, err)

	_, err = led.Debit("wh-1", "item-1", exp(t, "2025-06"), 10, true)
	require.NoError(t, err)

	// Un crédito posterior (p. ej. rechazo del traslado) no des-marca el lote.
	b, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 10, nil)
	require.NoError(t, err)
	assert.True(t, b.Used)
	assert.Equal(t, int64(100), b.Quantity)
}

// Lotes con vencimientos distintos son independientes.
func TestDebit_LotesPorVencimientoIndependientes(t *testing.T) {
	repo := newFakeBatchRepo()
	led := ledger.New(repo)
	_, err := led.Credit("wh-1", "item-1", exp(t, "2025-06"), 10, nil)
	require.NoError(t, err)
	_, err = led.Credit("wh-1", "item-1", exp(t, "2025-09"), 20, nil)
	require.NoError(t, err)

	_, err = led.Debit("wh-1", "item-1", exp(t, "2025-06"), 15, false)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el débito no puede cruzar lotes de otro vencimiento")
}
