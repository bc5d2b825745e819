package expiration_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
)

func month(t *testing.T, s string) *expiration.Month {
	t.Helper()
	m, err := expiration.ParseMonth(s)
	require.NoError(t, err)
	return &m
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseMonth
// ──────────────────────────────────────────────────────────────────────────────

func TestParseMonth_FormatoValido(t *testing.T) {
	m, err := expiration.ParseMonth("2025-02")
	require.NoError(t, err)
	assert.Equal(t, 2025, m.Year)
	assert.Equal(t, time.February, m.Month)
	assert.Equal(t, "2025-02", m.String())
}

func TestParseMonth_FormatoInvalido(t *testing.T) {
	for _, s := range []string{"", "2025", "2025-13", "02-2025", "2025-02-15"} {
		_, err := expiration.ParseMonth(s)
		assert.Error(t, err, "debe rechazar %q", s)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// End y DaysRemaining
// ──────────────────────────────────────────────────────────────────────────────

func TestEnd_UltimoDiaDelMes(t *testing.T) {
	assert.Equal(t,
		time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC),
		month(t, "2025-02").End())
	// Año bisiesto
	assert.Equal(t,
		time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
		month(t, "2024-02").End())
}

func TestDaysRemaining_ConteoCalendario(t *testing.T) {
	// 2025-01-20 -> fin de 2025-02: 11 días de enero + 28 de febrero = 39
	assert.Equal(t, 39, month(t, "2025-02").DaysRemaining(date(2025, time.January, 20)))
	// El último día válido cuenta como cero
	assert.Equal(t, 0, month(t, "2025-02").DaysRemaining(date(2025, time.February, 28)))
	// Ya vencido: negativo
	assert.Equal(t, -1, month(t, "2025-02").DaysRemaining(date(2025, time.March, 1)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Classify: modelo de umbral único
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_SinVencimiento(t *testing.T) {
	tier := expiration.Classify(nil, date(2025, time.January, 20), 90)
	assert.Equal(t, expiration.TierNone, tier)
}

func TestClassify_DentroDelUmbralEsWarning(t *testing.T) {
	// 39 días restantes con umbral de 90 -> warning
	tier := expiration.Classify(month(t, "2025-02"), date(2025, time.January, 20), 90)
	assert.Equal(t, expiration.TierWarning, tier)
}

func TestClassify_FueraDelUmbralEsHealthy(t *testing.T) {
	tier := expiration.Classify(month(t, "2025-12"), date(2025, time.January, 20), 90)
	assert.Equal(t, expiration.TierHealthy, tier)
}

func TestClassify_VencidoConDiasCeroONegativos(t *testing.T) {
	assert.Equal(t, expiration.TierExpired,
		expiration.Classify(month(t, "2025-02"), date(2025, time.February, 28), 90))
	assert.Equal(t, expiration.TierExpired,
		expiration.Classify(month(t, "2025-02"), date(2025, time.June, 1), 90))
}

func TestClassify_BordeDelUmbral(t *testing.T) {
	// days == warningDays queda healthy; el umbral es estrictamente menor
	m := month(t, "2025-02")
	today := date(2025, time.January, 20) // 39 días
	assert.Equal(t, expiration.TierHealthy, expiration.Classify(m, today, 39))
	assert.Equal(t, expiration.TierWarning, expiration.Classify(m, today, 40))
}

// ──────────────────────────────────────────────────────────────────────────────
// Less: orden FEFO
// ──────────────────────────────────────────────────────────────────────────────

func TestLess_FEFOSinVencimientoAlFinal(t *testing.T) {
	months := []*expiration.Month{
		nil,
		month(t, "2026-01"),
		month(t, "2025-03"),
		month(t, "2025-11"),
	}
	sort.SliceStable(months, func(i, j int) bool {
		return expiration.Less(months[i], months[j])
	})

	require.Len(t, months, 4)
	assert.Equal(t, "2025-03", months[0].String())
	assert.Equal(t, "2025-11", months[1].String())
	assert.Equal(t, "2026-01", months[2].String())
	assert.Nil(t, months[3], "los lotes sin vencimiento van al final")
}
