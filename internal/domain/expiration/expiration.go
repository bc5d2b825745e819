// Package expiration clasifica fechas de vencimiento con granularidad de mes.
// Es puro y sin estado: el umbral de alerta (warningDays) se inyecta en cada
// llamada, nunca se lee de configuración global.
package expiration

import (
	"fmt"
	"time"
)

// Tier clasificación de frescura de un lote.
type Tier string

const (
	TierNone    Tier = "none"    // artículo exento de vencimiento
	TierHealthy Tier = "healthy" // fuera del umbral de alerta
	TierWarning Tier = "warning" // dentro del umbral de alerta
	TierExpired Tier = "expired" // ya vencido
)

// Month fecha de vencimiento con granularidad de mes (formato YYYY-MM).
// El lote es válido hasta las 23:59:59 del último día calendario de ese mes.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth interpreta una cadena YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%s no es una fecha de vencimiento YYYY-MM válida", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String devuelve la representación YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// End devuelve el instante final de validez: 23:59:59 del último día del mes.
// Día 0 del mes siguiente = último día de este mes.
func (m Month) End() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 23, 59, 59, 0, time.UTC)
}

// DaysRemaining días calendario hasta el último día del mes de vencimiento.
// today se trunca al inicio del día; el último día válido cuenta como cero.
func (m Month) DaysRemaining(today time.Time) int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
	return int(lastDay.Sub(day) / (24 * time.Hour))
}

// Classify asigna el tier de frescura según los días restantes y el umbral.
// Un vencimiento nulo significa que el artículo no maneja vencimiento (TierNone).
// Modelo de umbral único: expired si days <= 0, warning si days < warningDays.
func Classify(m *Month, today time.Time, warningDays int) Tier {
	if m == nil {
		return TierNone
	}
	days := m.DaysRemaining(today)
	switch {
	case days <= 0:
		return TierExpired
	case days < warningDays:
		return TierWarning
	default:
		return TierHealthy
	}
}

// Less define el orden FEFO (First-Expire-First-Out): vence antes primero;
// los lotes sin vencimiento siempre al final.
func Less(a, b *Month) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return a.Month < b.Month
}
