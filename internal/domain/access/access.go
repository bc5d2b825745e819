// Package access implementa el guard de autorización por bodega y nivel.
// El grant se construye desde los claims del JWT y se pasa explícitamente a
// cada caso de uso; no hay estado de sesión global.
package access

import "fmt"

// Level nivel de acceso de un usuario. Enumeración cerrada.
type Level string

const (
	LevelViewer       Level = "viewer"       // solo lectura
	LevelWarehouseman Level = "warehouseman" // opera solo sus bodegas otorgadas
	LevelAdmin        Level = "admin"
	LevelSuperadmin   Level = "superadmin"
)

// ParseLevel valida y convierte una cadena en Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelViewer, LevelWarehouseman, LevelAdmin, LevelSuperadmin:
		return Level(s), nil
	}
	return "", fmt.Errorf("nivel de acceso desconocido: %q", s)
}

// Grant permisos efectivos de un usuario para esta petición.
// WarehouseIDs solo es relevante para warehouseman.
type Grant struct {
	Level        Level
	WarehouseIDs []string
}

// CanMutate indica si el usuario puede ejecutar operaciones de escritura.
// Solo viewer queda excluido.
func (g Grant) CanMutate() bool {
	return g.Level != LevelViewer
}

// CanAccessWarehouse indica si el usuario puede operar sobre la bodega dada.
// admin/superadmin acceden a todas; warehouseman solo a las otorgadas;
// viewer puede leer cualquiera (la mutación ya está negada por CanMutate).
func (g Grant) CanAccessWarehouse(warehouseID string) bool {
	switch g.Level {
	case LevelAdmin, LevelSuperadmin, LevelViewer:
		return true
	case LevelWarehouseman:
		for _, id := range g.WarehouseIDs {
			if id == warehouseID {
				return true
			}
		}
		return false
	}
	return false
}
