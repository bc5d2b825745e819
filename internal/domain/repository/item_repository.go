package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// ItemRepository define el puerto de persistencia para artículos del catálogo.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	List(limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
