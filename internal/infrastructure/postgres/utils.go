package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/almacen-pro/internal/domain/expiration"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// expToDB serializa el vencimiento como texto YYYY-MM (NULL para artículos sin vencimiento).
func expToDB(m *expiration.Month) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

// expFromDB parsea la columna de vencimiento.
func expFromDB(raw *string) (*expiration.Month, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	m, err := expiration.ParseMonth(*raw)
	if err != nil {
		return nil, fmt.Errorf("vencimiento corrupto en DB: %w", err)
	}
	return &m, nil
}
