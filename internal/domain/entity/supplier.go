package entity

import (
	"encoding/json"
	"time"
)

// Supplier proveedor para compras. Normalmente identificado con RUC.
type Supplier struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	DocumentType string    `json:"document_type"`
	Document     string    `json:"document"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// UnmarshalJSON acepta id numérico o string.
func (s *Supplier) UnmarshalJSON(b []byte) error {
	type plain Supplier
	aux := struct {
		*plain
		ID ID `json:"id"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.ID = string(aux.ID)
	return nil
}
