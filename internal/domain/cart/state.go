package cart

// State foto serializable del carrito, usada por los almacenes de sesión.
type State struct {
	Customer string `json:"customer"`
	Supplier string `json:"supplier"`
	Lines    []Line `json:"lines"`
}

// Empty indica si no hay líneas (estado Empty de la máquina de estados).
func (s State) Empty() bool {
	return len(s.Lines) == 0
}

// Snapshot devuelve el estado consistente del carrito bajo un único bloqueo.
func (c *Cart) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return State{Customer: c.customer, Supplier: c.supplier, Lines: lines}
}

// Restore reconstruye un carrito desde su estado. Líneas repetidas se fusionan
// y las cantidades no positivas se descartan.
func Restore(s State) *Cart {
	c := New()
	c.customer = s.Customer
	c.supplier = s.Supplier
	for _, l := range s.Lines {
		if l.Quantity <= 0 {
			continue
		}
		if i, ok := c.index[l.Product.ID]; ok {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.index[l.Product.ID] = len(c.lines)
		c.lines = append(c.lines, l)
	}
	return c
}
