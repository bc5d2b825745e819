package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos del catálogo.
type ItemUseCase struct {
	repo    repository.ItemRepository
	batches repository.BatchRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, batches repository.BatchRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, batches: batches}
}

// Create crea un artículo. Por defecto exige fecha de vencimiento.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	hasExpiry := true
	if in.HasExpiryDate != nil {
		hasExpiry = *in.HasExpiryDate
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Dose:          in.Dose,
		PackageType:   in.PackageType,
		Description:   in.Description,
		HasExpiryDate: hasExpiry,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	return toItemResponse(item), nil
}

// Update actualiza un artículo. HasExpiryDate no puede cambiarse si el artículo
// ya tiene lotes registrados: los lotes existentes quedarían incoherentes.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	if in.HasExpiryDate != nil && *in.HasExpiryDate != item.HasExpiryDate {
		batches, err := uc.batches.List(repository.BatchFilter{ItemID: id})
		if err != nil {
			return nil, err
		}
		if len(batches) > 0 {
			return nil, fmt.Errorf("%w: el artículo %s tiene lotes registrados y no admite cambiar el manejo de vencimiento", domain.ErrProtectedRecord, item.Name)
		}
		item.HasExpiryDate = *in.HasExpiryDate
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Dose != nil {
		item.Dose = *in.Dose
	}
	if in.PackageType != nil {
		item.PackageType = *in.PackageType
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista artículos con paginación.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina un artículo sin existencias.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	batches, err := uc.batches.List(repository.BatchFilter{ItemID: id})
	if err != nil {
		return err
	}
	if len(batches) > 0 {
		return fmt.Errorf("%w: el artículo %s tiene lotes registrados", domain.ErrProtectedRecord, item.Name)
	}
	return uc.repo.Delete(id)
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Dose:          it.Dose,
		PackageType:   it.PackageType,
		Description:   it.Description,
		HasExpiryDate: it.HasExpiryDate,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
