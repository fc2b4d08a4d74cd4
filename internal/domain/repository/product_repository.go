package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo del backend (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List devuelve el catálogo; supplierID vacío = todos los proveedores.
	List(ctx context.Context, supplierID string) ([]entity.Product, error)
}
