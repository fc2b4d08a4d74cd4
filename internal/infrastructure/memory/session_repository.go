// Package memory almacén de sesiones en memoria del proceso, para una sola instancia.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

type entry struct {
	data       []byte
	generation int64
	expiresAt  time.Time
}

// SessionRepository guarda copias serializadas para que el llamador no comparta punteros con el almacén.
type SessionRepository struct {
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]entry
}

// NewSessionRepository ttl <= 0 = sin expiración.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{ttl: ttl, now: time.Now, data: make(map[string]entry)}
}

// WithClock reemplaza el reloj (tests).
func (r *SessionRepository) WithClock(now func() time.Time) *SessionRepository {
	r.now = now
	return r
}

// Save mismas reglas de versión que redisstore: guarda si lo almacenado es Generation-1,
// o si no hay nada y la sesión es nueva.
func (r *SessionRepository) Save(_ context.Context, s *cart.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	e := entry{data: b, generation: s.Generation}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.data[s.ID]
	if ok && r.expired(prev) {
		ok = false
	}
	switch {
	case !ok && s.Generation != 0:
		return domain.ErrNotFound
	case ok && prev.generation != s.Generation-1:
		return domain.ErrConflict
	}
	r.data[s.ID] = e
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*cart.Session, error) {
	r.mu.RLock()
	e, ok := r.data[id]
	r.mu.RUnlock()
	if !ok || r.expired(e) {
		return nil, domain.ErrNotFound
	}
	var s cart.Session
	if err := json.Unmarshal(e.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}

// ListByOwner sesiones vigentes del usuario, más recientes primero.
func (r *SessionRepository) ListByOwner(_ context.Context, owner string) ([]*cart.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*cart.Session
	for _, e := range r.data {
		if r.expired(e) {
			continue
		}
		var s cart.Session
		if err := json.Unmarshal(e.data, &s); err != nil {
			return nil, err
		}
		if s.Owner == owner {
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Purge elimina sesiones expiradas; devuelve cuántas quitó.
func (r *SessionRepository) Purge() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.data {
		if r.expired(e) {
			delete(r.data, id)
			n++
		}
	}
	return n
}

func (r *SessionRepository) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt)
}
