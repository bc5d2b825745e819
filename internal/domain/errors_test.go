package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-pro/internal/domain"
)

// Una cantidad inválida es un caso de entrada inválida: errors.Is debe
// reconocer ambos sentinelas, incluso a través de envolturas de los casos de uso.
func TestErrInvalidQuantity_EsUnCasoDeValidacion(t *testing.T) {
	assert.ErrorIs(t, domain.ErrInvalidQuantity, domain.ErrValidation)

	wrapped := fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidQuantity)
	assert.ErrorIs(t, wrapped, domain.ErrInvalidQuantity)
	assert.ErrorIs(t, wrapped, domain.ErrValidation)
}

func TestSentinelas_SonDistinguibles(t *testing.T) {
	assert.False(t, errors.Is(domain.ErrValidation, domain.ErrInvalidQuantity),
		"la relación es unidireccional: validación genérica no es cantidad inválida")
	assert.False(t, errors.Is(domain.ErrInsufficientStock, domain.ErrValidation))
	assert.False(t, errors.Is(domain.ErrNotesRequired, domain.ErrValidation))
}
