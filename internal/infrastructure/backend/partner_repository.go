package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepository)(nil)
	_ repository.SupplierRepository = (*SupplierRepository)(nil)
)

// CustomerRepository clientes en el backend.
type CustomerRepository struct {
	c *Client
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(c *Client) *CustomerRepository {
	return &CustomerRepository{c: c}
}

// Create POST /customers
func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	var out entity.Customer
	if err := r.c.do(ctx, http.MethodPost, "/customers", customer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID GET /customers/{id}
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out entity.Customer
	if err := r.c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SupplierRepository proveedores en el backend.
type SupplierRepository struct {
	c *Client
}

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(c *Client) *SupplierRepository {
	return &SupplierRepository{c: c}
}

// Create POST /suppliers
func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := r.c.do(ctx, http.MethodPost, "/suppliers", supplier, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID GET /suppliers/{id}
func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := r.c.do(ctx, http.MethodGet, "/suppliers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
