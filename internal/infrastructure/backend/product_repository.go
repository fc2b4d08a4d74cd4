package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository catálogo de productos del backend.
type ProductRepository struct {
	c *Client
}

// NewProductRepository construye el repositorio.
func NewProductRepository(c *Client) *ProductRepository {
	return &ProductRepository{c: c}
}

// GetByID GET /products/{id}
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	if err := r.c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List GET /products?supplier={id}
func (r *ProductRepository) List(ctx context.Context, supplierID string) ([]entity.Product, error) {
	path := "/products"
	if supplierID != "" {
		path += "?" + url.Values{"supplier": {supplierID}}.Encode()
	}
	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var out []entity.Product
	if err := decodeList(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
