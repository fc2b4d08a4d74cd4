package dto

import "github.com/shopspring/decimal"

// CatalogItemResponse producto del catálogo visto desde una sesión de transacción.
// Available = CurrentStock - InCart en ventas; en compras no hay tope (-1).
type CatalogItemResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku,omitempty"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock int             `json:"current_stock"`
	Supplier     string          `json:"supplier,omitempty"`
	InCart       int             `json:"in_cart"`
	Available    int             `json:"available"`
}
