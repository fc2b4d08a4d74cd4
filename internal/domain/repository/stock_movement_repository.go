package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// StockMovementRepository envía lotes de compra/venta al backend, que aplica el movimiento de stock.
// Un error significa que el lote no quedó registrado (o no se sabe): el carrito no debe vaciarse.
type StockMovementRepository interface {
	PostSale(ctx context.Context, batch entity.StockBatch) (*entity.BatchResult, error)
	PostPurchase(ctx context.Context, batch entity.StockBatch) (*entity.BatchResult, error)
}
