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

// ConsumerUseCase casos de uso CRUD para consumidores finales.
type ConsumerUseCase struct {
	repo repository.ConsumerRepository
}

// NewConsumerUseCase construye el caso de uso.
func NewConsumerUseCase(repo repository.ConsumerRepository) *ConsumerUseCase {
	return &ConsumerUseCase{repo: repo}
}

// Create crea un consumidor.
func (uc *ConsumerUseCase) Create(in dto.CreateConsumerRequest) (*dto.ConsumerResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	now := time.Now()
	consumer := &entity.Consumer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(consumer); err != nil {
		return nil, err
	}
	return toConsumerResponse(consumer), nil
}

// GetByID obtiene un consumidor por ID.
func (uc *ConsumerUseCase) GetByID(id string) (*dto.ConsumerResponse, error) {
	consumer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, fmt.Errorf("%w: consumidor %s", domain.ErrNotFound, id)
	}
	return toConsumerResponse(consumer), nil
}

// Update actualiza un consumidor.
func (uc *ConsumerUseCase) Update(id string, in dto.UpdateConsumerRequest) (*dto.ConsumerResponse, error) {
	consumer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, fmt.Errorf("%w: consumidor %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		consumer.Name = *in.Name
	}
	if in.Address != nil {
		consumer.Address = *in.Address
	}
	if in.Description != nil {
		consumer.Description = *in.Description
	}
	consumer.UpdatedAt = time.Now()
	if err := uc.repo.Update(consumer); err != nil {
		return nil, err
	}
	return toConsumerResponse(consumer), nil
}

// List lista consumidores con paginación.
func (uc *ConsumerUseCase) List(limit, offset int) (*dto.ConsumerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConsumerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toConsumerResponse(c))
	}
	return &dto.ConsumerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina un consumidor por ID.
func (uc *ConsumerUseCase) Delete(id string) error {
	consumer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if consumer == nil {
		return fmt.Errorf("%w: consumidor %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(id)
}

func toConsumerResponse(c *entity.Consumer) *dto.ConsumerResponse {
	if c == nil {
		return nil
	}
	return &dto.ConsumerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
