package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// SupplierRepository define el puerto hacia el backend para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) (*entity.Supplier, error)
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}
