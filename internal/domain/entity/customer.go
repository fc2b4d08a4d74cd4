package entity

import (
	"encoding/json"
	"time"
)

// Customer cliente para ventas. DocumentType: cedula, ruc o passport.
type Customer struct {
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
func (c *Customer) UnmarshalJSON(b []byte) error {
	type plain Customer
	aux := struct {
		*plain
		ID ID `json:"id"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.ID = string(aux.ID)
	return nil
}
