package transactions

import (
	"strings"
	"sync"
)

// keyedMutex serializa operaciones por id de sesión.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock bloquea la clave y devuelve la función de desbloqueo.
// La clave se copia: puede venir de un buffer que el servidor HTTP reutiliza.
func (k *keyedMutex) Lock(key string) func() {
	key = strings.Clone(key)
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
