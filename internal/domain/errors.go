package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los casos de uso los envuelven
// con fmt.Errorf("%w: detalle") nombrando el invariante violado; la capa HTTP
// los mapea a códigos estables con errors.Is.
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrValidation = errors.New("entrada inválida")
	// ErrInvalidQuantity es un caso de ErrValidation: errors.Is lo reconoce
	// como ambos. La capa HTTP lo chequea primero para el código específico.
	ErrInvalidQuantity        = fmt.Errorf("%w: cantidad inválida", ErrValidation)
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrPermissionDenied       = errors.New("acceso denegado")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrProtectedRecord        = errors.New("registro protegido")
	ErrNotesRequired          = errors.New("las notas son obligatorias")
	ErrAlreadyResolved        = errors.New("la discrepancia ya fue resuelta")
	ErrActionNotApplicable    = errors.New("acción no aplicable a este tipo de traslado")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
)
