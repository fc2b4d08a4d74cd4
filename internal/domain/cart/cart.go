// Package cart mantiene las líneas de una compra o venta pendiente y aplica las
// reglas de stock localmente antes de enviar el lote al backend.
// No modifica stock: el movimiento autoritativo ocurre en el backend al confirmar.
package cart

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Mode dirección de la transacción.
type Mode string

const (
	ModeInput  Mode = entity.MovementTypeInput  // compra, sin tope de stock
	ModeOutput Mode = entity.MovementTypeOutput // venta, con tope de stock
)

// Valid indica si el modo es input u output.
func (m Mode) Valid() bool {
	return m == ModeInput || m == ModeOutput
}

// Line producto y cantidad pendientes de envío.
type Line struct {
	Product  entity.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal precio * cantidad.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart conjunto ordenado de líneas, con a lo sumo una línea por producto.
// index mapea product id -> posición en lines.
type Cart struct {
	mu       sync.Mutex
	lines    []Line
	index    map[string]int
	customer string
	supplier string
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// maxQuantity tope de una línea; evita desbordar int al convertir.
const maxQuantity = 1_000_000_000

// ParseQuantity convierte la cantidad ingresada en el formulario: un número entero positivo.
// Se aceptan decimales enteros ("3", "3.0", " 3 ").
func ParseQuantity(raw string) (int, error) {
	n, err := ParseUpdateQuantity(raw)
	if err != nil || n == 0 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// ParseUpdateQuantity como ParseQuantity pero admite 0, que en una actualización significa quitar la línea.
func ParseUpdateQuantity(raw string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsInteger() || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(maxQuantity)) {
		return 0, ErrInvalidQuantity
	}
	return int(d.IntPart()), nil
}

// SelectCustomer fija el cliente de la venta; descarta el proveedor.
func (c *Cart) SelectCustomer(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customer = id
	c.supplier = ""
}

// SelectSupplier fija el proveedor de la compra; descarta el cliente.
func (c *Cart) SelectSupplier(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supplier = id
	c.customer = ""
}

// Customer cliente seleccionado ("" si no hay).
func (c *Cart) Customer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customer
}

// Supplier proveedor seleccionado ("" si no hay).
func (c *Cart) Supplier() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.supplier
}

func (c *Cart) hasSelection(mode Mode) bool {
	if mode == ModeOutput {
		return c.customer != ""
	}
	return c.supplier != ""
}

// Add agrega quantity unidades del producto. Si el producto ya está en el carrito se suman
// las cantidades en su posición original; si no, la línea se agrega al final.
// En ventas la cantidad no puede superar CurrentStock menos lo que ya está en el carrito.
func (c *Cart) Add(product entity.Product, quantity int, mode Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !mode.Valid() {
		return ErrInvalidMode
	}
	if !c.hasSelection(mode) {
		return ErrMissingSelection
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	i, exists := c.index[product.ID]
	inCart := 0
	if exists {
		inCart = c.lines[i].Quantity
	}
	if mode == ModeOutput {
		available := product.CurrentStock - inCart
		if quantity > available {
			return &StockError{ProductID: product.ID, Requested: quantity, Available: available, InCart: inCart}
		}
	}

	if exists {
		c.lines[i].Product = product
		c.lines[i].Quantity += quantity
		return nil
	}
	c.index[product.ID] = len(c.lines)
	c.lines = append(c.lines, Line{Product: product, Quantity: quantity})
	return nil
}

// UpdateQuantity reemplaza la cantidad de la línea del producto sin moverla.
// Con una sola línea por producto el tope en ventas es el CurrentStock de la línea.
func (c *Cart) UpdateQuantity(productID string, quantity int, mode Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !mode.Valid() {
		return ErrInvalidMode
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i, ok := c.index[productID]
	if !ok {
		return ErrNotFound
	}
	line := &c.lines[i]
	if mode == ModeOutput && quantity > line.Product.CurrentStock {
		return &StockError{ProductID: productID, Requested: quantity, Available: line.Product.CurrentStock, InCart: line.Quantity}
	}
	line.Quantity = quantity
	return nil
}

// Remove quita la línea del producto; no hace nada si no existe.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].Product.ID] = j
	}
}

// Total suma precio * cantidad de todas las líneas, en aritmética decimal exacta.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Clear vacía el carrito y ambas selecciones en una sola transición.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[string]int)
	c.customer = ""
	c.supplier = ""
}

// Lines copia de las líneas en orden de inserción.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len número de líneas.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// QuantityOf cantidad en carrito para el producto (0 si no está).
func (c *Cart) QuantityOf(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[productID]; ok {
		return c.lines[i].Quantity
	}
	return 0
}

// Batch arma el lote para el backend. No vacía el carrito: eso lo decide el llamador
// cuando el backend confirma el registro.
func (c *Cart) Batch(mode Mode) (entity.StockBatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !mode.Valid() {
		return entity.StockBatch{}, ErrInvalidMode
	}
	if !c.hasSelection(mode) {
		return entity.StockBatch{}, ErrMissingSelection
	}
	if len(c.lines) == 0 {
		return entity.StockBatch{}, ErrEmptyCart
	}
	batch := entity.StockBatch{Items: make([]entity.BatchItem, 0, len(c.lines))}
	if mode == ModeOutput {
		batch.Customer = c.customer
	} else {
		batch.Supplier = c.supplier
	}
	for _, l := range c.lines {
		batch.Items = append(batch.Items, entity.BatchItem{Product: l.Product.ID, Quantity: l.Quantity})
	}
	return batch, nil
}

// FilterCatalog productos que pueden agregarse: en compras solo los del proveedor seleccionado.
func (c *Cart) FilterCatalog(products []entity.Product, mode Mode) []entity.Product {
	if mode != ModeInput {
		return products
	}
	supplier := c.Supplier()
	if supplier == "" {
		return nil
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.SupplierID == supplier {
			out = append(out, p)
		}
	}
	return out
}
