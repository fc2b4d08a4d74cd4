package sri

import (
	"fmt"
	"strings"
)

// DocumentType tipo de documento de identificación de clientes y proveedores.
type DocumentType string

const (
	DocumentCedula   DocumentType = "cedula"
	DocumentRUC      DocumentType = "ruc"
	DocumentPassport DocumentType = "passport"
)

// DocumentTypes lista los tipos soportados.
var DocumentTypes = []DocumentType{DocumentCedula, DocumentRUC, DocumentPassport}

// Valid indica si el tipo es uno de los soportados.
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Validate despacha al validador del tipo indicado.
func Validate(t DocumentType, value string) error {
	switch t {
	case DocumentCedula:
		return ValidateCedula(value)
	case DocumentRUC:
		return ValidateRUC(value)
	case DocumentPassport:
		return ValidatePassport(value)
	default:
		return fail("", ErrUnknownDocumentType, fmt.Sprintf("tipo de documento %q no soportado (use %s)", string(t), supportedList()))
	}
}

func supportedList() string {
	names := make([]string, len(DocumentTypes))
	for i, t := range DocumentTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
