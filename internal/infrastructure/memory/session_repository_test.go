package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/memory"
)

func session(id, owner string, updated time.Time) *cart.Session {
	return &cart.Session{
		ID:    id,
		Owner: owner,
		Mode:  cart.ModeOutput,
		State: cart.State{Customer: "c-1", Lines: []cart.Line{
			{Product: entity.Product{ID: "p-1", Price: decimal.RequireFromString("2.50"), CurrentStock: 4}, Quantity: 2},
		}},
		UpdatedAt: updated,
	}
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository(0)

	s := session("s-1", "u-1", time.Now())
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.State.Customer)
	assert.True(t, got.Cart().Total().Equal(decimal.RequireFromString("5")))

	// Modificar la copia no afecta lo guardado.
	got.State.Customer = "otro"
	again, _ := repo.Get(ctx, "s-1")
	assert.Equal(t, "c-1", again.State.Customer)

	require.NoError(t, repo.Delete(ctx, "s-1"))
	_, err = repo.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepository_Expiracion(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	repo := memory.NewSessionRepository(time.Hour).WithClock(func() time.Time { return now })

	require.NoError(t, repo.Save(ctx, session("s-1", "u-1", now)))
	now = now.Add(59 * time.Minute)
	_, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = repo.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, repo.Purge())
}

func TestSessionRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository(0)
	base := time.Now()
	require.NoError(t, repo.Save(ctx, session("a", "u-1", base)))
	require.NoError(t, repo.Save(ctx, session("b", "u-1", base.Add(time.Minute))))
	require.NoError(t, repo.Save(ctx, session("c", "u-2", base)))

	list, err := repo.ListByOwner(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
}

func TestSessionRepository_GuardadoCondicional(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	repo := memory.NewSessionRepository(time.Hour).WithClock(func() time.Time { return now })
	require.NoError(t, repo.Save(ctx, session("s-1", "u-1", now)))

	a, _ := repo.Get(ctx, "s-1")
	b, _ := repo.Get(ctx, "s-1")
	a.Commit(a.Cart(), now)
	require.NoError(t, repo.Save(ctx, a))
	b.Commit(b.Cart(), now)
	assert.ErrorIs(t, repo.Save(ctx, b), domain.ErrConflict)
	assert.ErrorIs(t, repo.Save(ctx, session("s-1", "u-1", now)), domain.ErrConflict)

	a.Commit(a.Cart(), now)
	require.NoError(t, repo.Save(ctx, a))

	// expirada cuenta como inexistente
	now = now.Add(2 * time.Hour)
	a.Commit(a.Cart(), now)
	assert.ErrorIs(t, repo.Save(ctx, a), domain.ErrNotFound)
	require.NoError(t, repo.Save(ctx, session("s-1", "u-1", now)))
}
