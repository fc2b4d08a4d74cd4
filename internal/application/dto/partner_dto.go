package dto

// CreatePartnerRequest body para POST /api/customers y POST /api/suppliers.
type CreatePartnerRequest struct {
	Name         string `json:"name"`
	DocumentType string `json:"document_type"` // cedula | ruc | passport
	Document     string `json:"document"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// ValidateDocumentRequest body para POST /api/documents/validate.
type ValidateDocumentRequest struct {
	DocumentType string `json:"document_type"`
	Document     string `json:"document"`
}

// ValidateDocumentResponse resultado de la validación.
type ValidateDocumentResponse struct {
	Valid         bool   `json:"valid"`
	DocumentType  string `json:"document_type"`
	Document      string `json:"document"`
	Reason        string `json:"reason,omitempty"`
	Message       string `json:"message,omitempty"`
	NaturalPerson bool   `json:"natural_person,omitempty"` // solo RUC de persona natural
	Cedula        string `json:"cedula,omitempty"`         // cédula contenida en ese RUC
}
