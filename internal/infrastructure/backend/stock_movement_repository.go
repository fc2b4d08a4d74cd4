package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository registra compras y ventas en lote.
type StockMovementRepository struct {
	c *Client
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(c *Client) *StockMovementRepository {
	return &StockMovementRepository{c: c}
}

// PostSale POST /sales
func (r *StockMovementRepository) PostSale(ctx context.Context, batch entity.StockBatch) (*entity.BatchResult, error) {
	var out entity.BatchResult
	if err := r.c.do(ctx, http.MethodPost, "/sales", batch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostPurchase POST /purchases
func (r *StockMovementRepository) PostPurchase(ctx context.Context, batch entity.StockBatch) (*entity.BatchResult, error) {
	var out entity.BatchResult
	if err := r.c.do(ctx, http.MethodPost, "/purchases", batch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
