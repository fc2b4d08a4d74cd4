package sri

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var passportRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidatePassport acepta pasaportes alfanuméricos de 6 a 9 caracteres.
func ValidatePassport(value string) error {
	n := utf8.RuneCountInString(value)
	if n < 6 || n > 9 {
		return fail(DocumentPassport, ErrInvalidLength, fmt.Sprintf("el pasaporte debe tener entre 6 y 9 caracteres, se recibieron %d", n))
	}
	if !passportRe.MatchString(value) {
		return fail(DocumentPassport, ErrInvalidCharacters, "el pasaporte solo admite letras y números")
	}
	return nil
}
