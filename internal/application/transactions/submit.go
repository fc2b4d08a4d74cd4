package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Submit envía el carrito como lote al backend (venta o compra).
//
// El carrito se vacía solo si el backend confirma y la sesión no cambió mientras tanto
// (misma generación, verificada también al guardar). Ante cualquier fallo el carrito queda
// intacto para reintentar. Cancel o Discard abortan la llamada en curso; el envío en curso
// lo conoce solo la instancia que lo inició.
func (uc *UseCase) Submit(ctx context.Context, owner, id string) (*dto.SubmitResponse, error) {
	id = strings.Clone(id) // clave de inflight
	unlock := uc.locks.Lock(id)
	s, err := uc.load(ctx, owner, id)
	if err != nil {
		unlock()
		return nil, err
	}
	if uc.submitting(id) {
		unlock()
		return nil, ErrSubmitting
	}
	c := s.Cart()
	batch, err := c.Batch(s.Mode)
	if err != nil {
		unlock()
		return nil, err
	}
	total := c.Total()
	generation := s.Generation

	submitCtx, cancel := context.WithTimeout(ctx, uc.deps.SubmitTimeout)
	canceled := make(chan struct{})
	flight := &submission{cancel: func() {
		close(canceled)
		cancel()
	}}
	uc.mu.Lock()
	uc.inflight[id] = flight
	uc.mu.Unlock()
	unlock()

	result, err := uc.post(submitCtx, s.Mode, batch)
	cancel()

	uc.mu.Lock()
	if uc.inflight[id] == flight {
		delete(uc.inflight, id)
	}
	uc.mu.Unlock()

	if err != nil {
		select {
		case <-canceled:
			uc.log.Info().Str("session", id).Msg("envío cancelado por el usuario")
			return nil, fmt.Errorf("%w: %v", domain.ErrSubmissionCanceled, err)
		default:
		}
		uc.log.Warn().Err(err).Str("session", id).Str("type", string(s.Mode)).Int("items", len(batch.Items)).
			Msg("el backend rechazó el lote; el carrito se conserva")
		return nil, err
	}

	uc.log.Info().Str("session", id).Str("type", string(s.Mode)).Str("backend_id", result.ID).
		Int("items", len(batch.Items)).Str("total", total.StringFixed(2)).Msg("lote registrado en el backend")

	cleared, err := uc.clearAfterSubmit(ctx, owner, id, generation)
	if err != nil {
		// El lote ya quedó registrado; solo falló la limpieza local.
		uc.log.Error().Err(err).Str("session", id).Msg("no se pudo vaciar el carrito tras el envío")
	}
	return &dto.SubmitResponse{
		ID:        result.ID,
		Reference: result.Reference,
		Type:      string(s.Mode),
		Total:     total,
		Items:     len(batch.Items),
		Cleared:   cleared,
	}, nil
}

func (uc *UseCase) post(ctx context.Context, mode cart.Mode, batch entity.StockBatch) (*entity.BatchResult, error) {
	var (
		res *entity.BatchResult
		err error
	)
	if mode == cart.ModeOutput {
		res, err = uc.deps.Movements.PostSale(ctx, batch)
	} else {
		res, err = uc.deps.Movements.PostPurchase(ctx, batch)
	}
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &entity.BatchResult{}
	}
	return res, nil
}

func (uc *UseCase) clearAfterSubmit(ctx context.Context, owner, id string, generation int64) (bool, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()
	s, err := uc.load(ctx, owner, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if s.Generation != generation {
		return false, nil
	}
	c := s.Cart()
	c.Clear()
	s.Commit(c, uc.deps.Now())
	err = uc.deps.Sessions.Save(ctx, s)
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
		// otra instancia cambió o descartó la sesión después del envío
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// submission envío en curso; la identidad del puntero distingue envíos sucesivos de la misma sesión.
type submission struct {
	cancel func()
}

// Cancel aborta el envío en curso de la sesión.
func (uc *UseCase) Cancel(ctx context.Context, owner, id string) error {
	if _, err := uc.load(ctx, owner, id); err != nil {
		return err
	}
	if !uc.cancelInflight(id) {
		return ErrNotSubmitting
	}
	return nil
}

func (uc *UseCase) cancelInflight(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	flight, ok := uc.inflight[id]
	if !ok {
		return false
	}
	delete(uc.inflight, id)
	flight.cancel()
	return true
}

func (uc *UseCase) submitting(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.inflight[id]
	return ok
}
