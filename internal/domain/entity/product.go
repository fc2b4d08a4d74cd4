package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product producto tal como lo expone el catálogo del backend.
// CurrentStock es la foto del stock al momento de consultarlo; el stock autoritativo vive en el backend.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku,omitempty"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock int             `json:"current_stock"`
	SupplierID   string          `json:"supplier,omitempty"`
}

// UnmarshalJSON acepta id y supplier numéricos o string.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	aux := struct {
		*plain
		ID         ID `json:"id"`
		SupplierID ID `json:"supplier"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.ID, p.SupplierID = string(aux.ID), string(aux.SupplierID)
	return nil
}
