package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// CustomerRepository define el puerto hacia el backend para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}
