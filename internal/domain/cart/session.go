package cart

import "time"

// Session transacción en curso de un usuario: un carrito y su modo.
// Generation aumenta con cada cambio; el envío solo vacía el carrito si no cambió mientras tanto.
type Session struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	Mode       Mode      `json:"mode"`
	State      State     `json:"state"`
	Generation int64     `json:"generation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Cart reconstruye el carrito de la sesión.
func (s *Session) Cart() *Cart {
	return Restore(s.State)
}

// Commit guarda el estado del carrito y avanza la generación.
func (s *Session) Commit(c *Cart, now time.Time) {
	s.State = c.Snapshot()
	s.Generation++
	s.UpdatedAt = now
}
