package http

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/jhoicas/Inventario-console/pkg/sri"
)

// Claves de mensajes que no vienen de sri.Reason.
const (
	msgMissingSelection  = "MISSING_SELECTION"
	msgInvalidQuantity   = "INVALID_QUANTITY"
	msgInsufficientStock = "INSUFFICIENT_STOCK"
	msgNotInCart         = "NOT_IN_CART"
	msgEmptyCart         = "EMPTY_CART"
	msgSubmitting        = "SUBMITTING"
	msgSubmitCanceled    = "SUBMISSION_CANCELED"
	msgSupplierMismatch  = "SUPPLIER_MISMATCH"
	msgNotSubmitting     = "NOT_SUBMITTING"
	msgRequiredName      = "REQUIRED_NAME"
	msgInvalidEmail      = "INVALID_EMAIL"
)

var supportedLanguages = []language.Tag{language.Spanish, language.English}

var (
	messages = newCatalog()
	matcher  = language.NewMatcher(supportedLanguages)
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	es := map[string]string{
		string(sri.ReasonInvalidFormat):     "El documento no tiene el formato esperado.",
		string(sri.ReasonInvalidProvince):   "El código de provincia no es válido.",
		string(sri.ReasonInvalidThirdDigit): "El tercer dígito no es válido.",
		string(sri.ReasonInvalidChecksum):   "El dígito verificador no coincide.",
		string(sri.ReasonInvalidSuffix):     "El código de establecimiento del RUC no es válido.",
		string(sri.ReasonInvalidKind):       "El RUC no corresponde a un tipo de contribuyente válido.",
		string(sri.ReasonInvalidLength):     "El pasaporte debe tener entre 6 y 9 caracteres.",
		string(sri.ReasonInvalidCharacters): "El pasaporte solo admite letras y números.",
		string(sri.ReasonUnknownType):       "Tipo de documento no soportado.",
		msgMissingSelection:                 "Seleccione un cliente (venta) o un proveedor (compra) antes de continuar.",
		msgInvalidQuantity:                  "La cantidad debe ser un número entero positivo.",
		msgInsufficientStock:                "Stock insuficiente: disponible %d, en carrito %d.",
		msgNotInCart:                        "El producto no está en el carrito.",
		msgEmptyCart:                        "El carrito está vacío.",
		msgSubmitting:                       "Hay un envío en curso; espere o cancélelo.",
		msgSubmitCanceled:                   "El envío fue cancelado; el carrito se conserva.",
		msgSupplierMismatch:                 "El producto no pertenece al proveedor seleccionado.",
		msgNotSubmitting:                    "No hay un envío en curso.",
		msgRequiredName:                     "El nombre es requerido.",
		msgInvalidEmail:                     "El correo no es válido.",
	}
	en := map[string]string{
		string(sri.ReasonInvalidFormat):     "The document does not have the expected format.",
		string(sri.ReasonInvalidProvince):   "The province code is not valid.",
		string(sri.ReasonInvalidThirdDigit): "The third digit is not valid.",
		string(sri.ReasonInvalidChecksum):   "The check digit does not match.",
		string(sri.ReasonInvalidSuffix):     "The RUC establishment code is not valid.",
		string(sri.ReasonInvalidKind):       "The RUC does not match a valid taxpayer type.",
		string(sri.ReasonInvalidLength):     "The passport must have between 6 and 9 characters.",
		string(sri.ReasonInvalidCharacters): "The passport only allows letters and digits.",
		string(sri.ReasonUnknownType):       "Unsupported document type.",
		msgMissingSelection:                 "Select a customer (sale) or a supplier (purchase) first.",
		msgInvalidQuantity:                  "Quantity must be a positive whole number.",
		msgInsufficientStock:                "Insufficient stock: %d available, %d in cart.",
		msgNotInCart:                        "The product is not in the cart.",
		msgEmptyCart:                        "The cart is empty.",
		msgSubmitting:                       "A submission is in progress; wait or cancel it.",
		msgSubmitCanceled:                   "The submission was canceled; the cart was kept.",
		msgSupplierMismatch:                 "The product does not belong to the selected supplier.",
		msgNotSubmitting:                    "There is no submission in progress.",
		msgRequiredName:                     "Name is required.",
		msgInvalidEmail:                     "The email is not valid.",
	}
	for k, v := range es {
		_ = b.SetString(language.Spanish, k, v)
	}
	for k, v := range en {
		_ = b.SetString(language.English, k, v)
	}
	return b
}

// printerFor elige el idioma a partir de Accept-Language (español por defecto).
func printerFor(acceptLanguage string) *message.Printer {
	tag := language.Spanish
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			tag = supportedLanguages[idx]
		}
	}
	return message.NewPrinter(tag, message.Catalog(messages))
}

// Localize traduce una clave de mensaje al idioma de Accept-Language.
func Localize(acceptLanguage, key string, args ...interface{}) string {
	return printerFor(acceptLanguage).Sprintf(key, args...)
}
