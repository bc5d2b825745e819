package usecase

import (
	"fmt"
	"strconv"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// SettingsUseCase lectura y escritura de ajustes del sistema.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// All devuelve todos los ajustes.
func (uc *SettingsUseCase) All() (map[string]string, error) {
	return uc.repo.All()
}

// Get devuelve un ajuste por clave.
func (uc *SettingsUseCase) Get(key string) (string, error) {
	value, err := uc.repo.Get(key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, key)
	}
	return value, nil
}

// Set escribe un ajuste. exp_warning_days debe ser un entero positivo.
func (uc *SettingsUseCase) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: la clave del ajuste es obligatoria", domain.ErrValidation)
	}
	if key == "exp_warning_days" {
		days, err := strconv.Atoi(value)
		if err != nil || days <= 0 {
			return fmt.Errorf("%w: exp_warning_days debe ser un entero positivo", domain.ErrValidation)
		}
	}
	return uc.repo.Set(key, value)
}
