package sri

import "errors"

// Reason código estable del motivo de rechazo de un documento.
// Los formularios lo traducen a mensajes para el usuario.
type Reason string

const (
	ReasonInvalidFormat     Reason = "INVALID_FORMAT"
	ReasonInvalidProvince   Reason = "INVALID_PROVINCE"
	ReasonInvalidThirdDigit Reason = "INVALID_THIRD_DIGIT"
	ReasonInvalidChecksum   Reason = "INVALID_CHECKSUM"
	ReasonInvalidSuffix     Reason = "INVALID_SUFFIX"
	ReasonInvalidKind       Reason = "INVALID_KIND"
	ReasonInvalidLength     Reason = "INVALID_LENGTH"
	ReasonInvalidCharacters Reason = "INVALID_CHARACTERS"
	ReasonUnknownType       Reason = "UNKNOWN_DOCUMENT_TYPE"
)

// ValidationError documento rechazado con un motivo concreto.
type ValidationError struct {
	Type   DocumentType
	Reason Reason
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Type == "" {
		return "sri: " + e.Msg
	}
	return "sri: " + string(e.Type) + ": " + e.Msg
}

// Is compara por motivo, así errors.Is(err, ErrInvalidChecksum) funciona sin importar el tipo de documento.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

// Errores centinela por motivo.
var (
	ErrInvalidFormat       = &ValidationError{Reason: ReasonInvalidFormat, Msg: "formato inválido"}
	ErrInvalidProvince     = &ValidationError{Reason: ReasonInvalidProvince, Msg: "código de provincia inválido"}
	ErrInvalidThirdDigit   = &ValidationError{Reason: ReasonInvalidThirdDigit, Msg: "tercer dígito inválido"}
	ErrInvalidChecksum     = &ValidationError{Reason: ReasonInvalidChecksum, Msg: "dígito verificador inválido"}
	ErrInvalidSuffix       = &ValidationError{Reason: ReasonInvalidSuffix, Msg: "sufijo de establecimiento inválido"}
	ErrInvalidKind         = &ValidationError{Reason: ReasonInvalidKind, Msg: "tipo de contribuyente inválido"}
	ErrInvalidLength       = &ValidationError{Reason: ReasonInvalidLength, Msg: "longitud inválida"}
	ErrInvalidCharacters   = &ValidationError{Reason: ReasonInvalidCharacters, Msg: "caracteres no permitidos"}
	ErrUnknownDocumentType = &ValidationError{Reason: ReasonUnknownType, Msg: "tipo de documento desconocido"}
)

func fail(t DocumentType, sentinel *ValidationError, msg string) error {
	return &ValidationError{Type: t, Reason: sentinel.Reason, Msg: msg}
}

// ReasonOf devuelve el motivo de un error de validación (aunque venga envuelto) o "" si no lo es.
func ReasonOf(err error) Reason {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}
