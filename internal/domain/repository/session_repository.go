package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/cart"
)

// SessionRepository almacena sesiones de transacción (carrito en curso por usuario).
// Get devuelve domain.ErrNotFound si la sesión no existe o expiró.
// Save es condicional sobre Generation: guarda si lo almacenado tiene Generation-1 (o nada, si
// Generation es 0); si otra escritura ganó devuelve domain.ErrConflict, y si la sesión ya no
// existe, domain.ErrNotFound.
type SessionRepository interface {
	Save(ctx context.Context, s *cart.Session) error
	Get(ctx context.Context, id string) (*cart.Session, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, owner string) ([]*cart.Session, error)
}
