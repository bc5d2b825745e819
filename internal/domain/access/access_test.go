package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/domain/access"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"viewer", "warehouseman", "admin", "superadmin"} {
		level, err := access.ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, access.Level(s), level)
	}
	_, err := access.ParseLevel("root")
	assert.Error(t, err, "nivel desconocido debe rechazarse")
}

func TestCanMutate_SoloViewerExcluido(t *testing.T) {
	assert.False(t, access.Grant{Level: access.LevelViewer}.CanMutate())
	assert.True(t, access.Grant{Level: access.LevelWarehouseman}.CanMutate())
	assert.True(t, access.Grant{Level: access.LevelAdmin}.CanMutate())
	assert.True(t, access.Grant{Level: access.LevelSuperadmin}.CanMutate())
}

func TestCanAccessWarehouse_AdminYSuperadminTodas(t *testing.T) {
	assert.True(t, access.Grant{Level: access.LevelAdmin}.CanAccessWarehouse("wh-1"))
	assert.True(t, access.Grant{Level: access.LevelSuperadmin}.CanAccessWarehouse("wh-99"))
}

// El bodeguero con bodegas [2] no puede operar la bodega 1.
func TestCanAccessWarehouse_BodegueroSoloSusBodegas(t *testing.T) {
	g := access.Grant{Level: access.LevelWarehouseman, WarehouseIDs: []string{"wh-2"}}
	assert.True(t, g.CanAccessWarehouse("wh-2"))
	assert.False(t, g.CanAccessWarehouse("wh-1"))
}

func TestCanAccessWarehouse_BodegueroSinBodegas(t *testing.T) {
	g := access.Grant{Level: access.LevelWarehouseman}
	assert.False(t, g.CanAccessWarehouse("wh-1"))
}

func TestCanAccessWarehouse_ViewerLeeCualquiera(t *testing.T) {
	// La mutación ya está negada por CanMutate; la lectura no se restringe.
	g := access.Grant{Level: access.LevelViewer}
	assert.True(t, g.CanAccessWarehouse("wh-1"))
	assert.False(t, g.CanMutate())
}
