package cart

import (
	"errors"
	"fmt"
)

// Errores del carrito. Todos son recuperables: el llamador los muestra al usuario.
var (
	ErrMissingSelection  = errors.New("cart: seleccione un cliente (venta) o proveedor (compra)")
	ErrInvalidQuantity   = errors.New("cart: la cantidad debe ser un número entero positivo")
	ErrInsufficientStock = errors.New("cart: stock insuficiente")
	ErrNotFound          = errors.New("cart: el producto no está en el carrito")
	ErrInvalidMode       = errors.New("cart: tipo de transacción inválido")
	ErrEmptyCart         = errors.New("cart: el carrito está vacío")
)

// StockError detalle de un rechazo por stock: cuánto queda disponible y cuánto ya está en el carrito.
type StockError struct {
	ProductID string
	Requested int
	Available int
	InCart    int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("cart: stock insuficiente para %s: solicitado %d, disponible %d (en carrito %d)",
		e.ProductID, e.Requested, e.Available, e.InCart)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
