package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ConsumerRepository = (*ConsumerRepo)(nil)

// ConsumerRepo implementación de ConsumerRepository sobre PostgreSQL.
type ConsumerRepo struct {
	q Querier
}

// NewConsumerRepository construye el adaptador de consumidores. Pasar pool o tx (Querier).
func NewConsumerRepository(q Querier) *ConsumerRepo {
	return &ConsumerRepo{q: q}
}

// Create inserta un consumidor.
func (r *ConsumerRepo) Create(c *entity.Consumer) error {
	query := `
		INSERT INTO consumers (id, name, address, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Address, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}
	return nil
}

// GetByID obtiene un consumidor por ID. Nil si no existe.
func (r *ConsumerRepo) GetByID(id string) (*entity.Consumer, error) {
	query := `SELECT id, name, address, description, created_at, updated_at FROM consumers WHERE id = $1`
	var c entity.Consumer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumer: %w", err)
	}
	return &c, nil
}

// Update actualiza un consumidor.
func (r *ConsumerRepo) Update(c *entity.Consumer) error {
	query := `
		UPDATE consumers
		SET name = $2, address = $3, description = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Address, c.Description, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update consumer: %w", err)
	}
	return nil
}

// List lista consumidores con paginación, por nombre.
func (r *ConsumerRepo) List(limit, offset int) ([]*entity.Consumer, error) {
	query := `
		SELECT id, name, address, description, created_at, updated_at
		FROM consumers
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list consumers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Consumer
	for rows.Next() {
		var c entity.Consumer
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan consumer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Delete elimina un consumidor.
func (r *ConsumerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM consumers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumer: %w", err)
	}
	return nil
}
