package entity

import "time"

// Consumer destino final de un traslado tipo consumer. El stock entregado a un
// consumidor sale del sistema: no se acredita en ninguna bodega.
type Consumer struct {
	ID          string
	Name        string
	Address     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
