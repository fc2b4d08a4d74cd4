package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Quantity cantidad tal como llega del formulario: acepta número o string JSON.
// La validación (entero positivo) la hacen cart.ParseQuantity y cart.ParseUpdateQuantity.
type Quantity string

// UnmarshalJSON acepta 3, "3" o null.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*q = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*q = Quantity(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = Quantity(n.String())
	return nil
}

// OpenTransactionRequest body para POST /api/transactions.
type OpenTransactionRequest struct {
	Type string `json:"type"` // input | output
}

// SelectPartyRequest body para PUT /api/transactions/:id/party.
// Customer en ventas, Supplier en compras.
type SelectPartyRequest struct {
	Customer entity.ID `json:"customer,omitempty"`
	Supplier entity.ID `json:"supplier,omitempty"`
}

// CartItemRequest body para POST /api/transactions/:id/items y PUT /api/transactions/:id/items/:productId.
type CartItemRequest struct {
	ProductID entity.ID `json:"product"`
	Quantity  Quantity  `json:"quantity"`
}

// CartLineResponse línea del carrito en respuestas.
type CartLineResponse struct {
	ProductID    string          `json:"product"`
	SKU          string          `json:"sku,omitempty"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock int             `json:"current_stock"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// TransactionResponse sesión de transacción con su carrito.
type TransactionResponse struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Customer   string             `json:"customer"`
	Supplier   string             `json:"supplier"`
	Lines      []CartLineResponse `json:"lines"`
	Total      decimal.Decimal    `json:"total"`
	ItemCount  int                `json:"item_count"`
	Empty      bool               `json:"empty"`
	Submitting bool               `json:"submitting"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// SubmitResponse resultado de enviar el lote al backend.
type SubmitResponse struct {
	ID        string          `json:"id"`
	Reference string          `json:"reference,omitempty"`
	Type      string          `json:"type"`
	Total     decimal.Decimal `json:"total"`
	Items     int             `json:"items"`
	Cleared   bool            `json:"cleared"`
}
