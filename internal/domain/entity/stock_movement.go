package entity

import "encoding/json"

// Tipos de transacción de stock.
const (
	MovementTypeInput  = "input"  // compra: el stock aumenta
	MovementTypeOutput = "output" // venta: el stock disminuye
)

// BatchItem línea del lote enviado al backend.
type BatchItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// StockBatch lote de compra (Supplier) o venta (Customer) listo para enviar al backend,
// que aplica el movimiento de stock autoritativo.
type StockBatch struct {
	Customer string      `json:"customer,omitempty"`
	Supplier string      `json:"supplier,omitempty"`
	Items    []BatchItem `json:"items"`
}

// BatchResult respuesta del backend tras registrar el lote.
type BatchResult struct {
	ID        string `json:"id"`
	Reference string `json:"reference,omitempty"`
}

func (r *BatchResult) UnmarshalJSON(b []byte) error {
	type plain BatchResult
	aux := struct {
		*plain
		ID ID `json:"id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.ID = string(aux.ID)
	return nil
}
