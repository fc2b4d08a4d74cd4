// Package redisstore almacén de sesiones de transacción en Redis, compartido entre instancias.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

const (
	sessionKeyPrefix = "console:session:"
	ownerKeyPrefix   = "console:owner:"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

// SessionRepository guarda cada sesión como JSON con TTL y un set por usuario con sus ids.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository ttl <= 0 = sin expiración.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func sessionKey(id string) string  { return sessionKeyPrefix + id }
func ownerKey(owner string) string { return ownerKeyPrefix + owner }

// Save guarda la sesión solo si la versión almacenada es la anterior (Generation-1), o si no existe
// y la sesión es nueva (Generation 0). La lectura y la escritura van bajo WATCH, de modo que dos
// instancias que guardan la misma sesión a la vez no se pisan: la segunda recibe domain.ErrConflict.
// Si la sesión ya no existe (expiró o se descartó) devuelve domain.ErrNotFound.
func (r *SessionRepository) Save(ctx context.Context, s *cart.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redisstore: serializar sesión: %w", err)
	}
	key := sessionKey(s.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkGeneration(ctx, tx, key, s.Generation); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			pipe.SAdd(ctx, ownerKey(s.Owner), s.ID)
			if r.ttl > 0 {
				pipe.Expire(ctx, ownerKey(s.Owner), r.ttl)
			}
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		err = domain.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("redisstore: guardar sesión %s: %w", s.ID, err)
	}
	return nil
}

func checkGeneration(ctx context.Context, tx *redis.Tx, key string, generation int64) error {
	stored, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		if generation != 0 {
			return domain.ErrNotFound
		}
		return nil
	}
	if err != nil {
		return err
	}
	var prev struct {
		Generation int64 `json:"generation"`
	}
	if err := json.Unmarshal(stored, &prev); err != nil {
		return fmt.Errorf("decodificar versión guardada: %w", err)
	}
	if prev.Generation != generation-1 {
		return domain.ErrConflict
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*cart.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: leer sesión %s: %w", id, err)
	}
	var s cart.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("redisstore: decodificar sesión %s: %w", id, err)
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	s, err := r.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, ownerKey(s.Owner), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisstore: eliminar sesión %s: %w", id, err)
	}
	return nil
}

// ListByOwner sesiones vigentes del usuario, más recientes primero. Limpia del set los ids expirados.
func (r *SessionRepository) ListByOwner(ctx context.Context, owner string) ([]*cart.Session, error) {
	ids, err := r.client.SMembers(ctx, ownerKey(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: listar sesiones de %s: %w", owner, err)
	}
	out := make([]*cart.Session, 0, len(ids))
	var stale []interface{}
	for _, id := range ids {
		s, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(stale) > 0 {
		_ = r.client.SRem(ctx, ownerKey(owner), stale...).Err()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Ping verifica la conexión (health check).
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
