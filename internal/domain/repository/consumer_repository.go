package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// ConsumerRepository define el puerto de persistencia para consumidores.
type ConsumerRepository interface {
	Create(consumer *entity.Consumer) error
	GetByID(id string) (*entity.Consumer, error)
	Update(consumer *entity.Consumer) error
	List(limit, offset int) ([]*entity.Consumer, error)
	Delete(id string) error
}
