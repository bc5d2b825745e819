package repository

// SettingsRepository define el puerto para los ajustes clave/valor del sistema
// (p. ej. exp_warning_days). Get devuelve cadena vacía si la clave no existe.
type SettingsRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	All() (map[string]string, error)
}
