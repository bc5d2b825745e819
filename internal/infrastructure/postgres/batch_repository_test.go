package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// listBatchesQuery: las columnas de identidad son UUID, un filtro vacío debe
// omitirse del WHERE (comparar uuid contra '' no tipa en Postgres).
// ──────────────────────────────────────────────────────────────────────────────

func TestListBatchesQuery_SinFiltroNoLlevaWhere(t *testing.T) {
	query, args := listBatchesQuery(repository.BatchFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
	assert.Contains(t, query, "ORDER BY expiration ASC NULLS LAST")
}

func TestListBatchesQuery_SoloBodega(t *testing.T) {
	query, args := listBatchesQuery(repository.BatchFilter{WarehouseID: "wh-1"})

	assert.Contains(t, query, "WHERE warehouse_id = $1")
	assert.NotContains(t, query, "item_id =")
	require.Len(t, args, 1)
	assert.Equal(t, "wh-1", args[0])
}

func TestListBatchesQuery_SoloArticulo(t *testing.T) {
	query, args := listBatchesQuery(repository.BatchFilter{ItemID: "item-1"})

	assert.Contains(t, query, "WHERE item_id = $1", "el placeholder se numera según los filtros presentes")
	assert.NotContains(t, query, "warehouse_id =")
	require.Len(t, args, 1)
	assert.Equal(t, "item-1", args[0])
}

func TestListBatchesQuery_AmbosFiltros(t *testing.T) {
	query, args := listBatchesQuery(repository.BatchFilter{WarehouseID: "wh-1", ItemID: "item-1"})

	assert.Contains(t, query, "WHERE warehouse_id = $1 AND item_id = $2")
	require.Len(t, args, 2)
	assert.Equal(t, "wh-1", args[0])
	assert.Equal(t, "item-1", args[1])
}

// Ninguna variante debe comparar una columna uuid contra cadena vacía.
func TestListBatchesQuery_NuncaComparaContraVacio(t *testing.T) {
	for _, filter := range []repository.BatchFilter{
		{},
		{WarehouseID: "wh-1"},
		{ItemID: "item-1"},
		{WarehouseID: "wh-1", ItemID: "item-1"},
	} {
		query, _ := listBatchesQuery(filter)
		assert.False(t, strings.Contains(query, "= ''"), "query: %s", query)
	}
}
