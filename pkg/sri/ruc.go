package sri

import (
	"errors"
	"fmt"
)

// coeficientes módulo 11 del SRI para sociedades privadas (tercer dígito 9) y públicas (tercer dígito 6).
var (
	privateCoefficients = []int{4, 3, 2, 7, 6, 5, 4, 3, 2}
	publicCoefficients  = []int{3, 2, 7, 6, 5, 4, 3, 2}
)

// ValidateRUC valida un RUC de 13 dígitos. El tercer dígito define el tipo de contribuyente:
// 0-5 persona natural (cédula + "001"), 9 sociedad privada y 6 entidad pública.
func ValidateRUC(value string) error {
	if len(value) != 13 || !allDigits(value) {
		return fail(DocumentRUC, ErrInvalidFormat, fmt.Sprintf("el RUC debe tener 13 dígitos, se recibió %q", value))
	}
	if err := checkProvince(DocumentRUC, value); err != nil {
		return err
	}
	switch third := value[2] - '0'; {
	case third < 6:
		if err := validateCedula(DocumentRUC, value[:10]); err != nil {
			return err
		}
		return checkSuffix(value[10:], "001")
	case third == 9:
		if err := checkMod11(value, privateCoefficients); err != nil {
			return err
		}
		return checkSuffix(value[10:], "001")
	case third == 6:
		if err := checkMod11(value, publicCoefficients); err != nil {
			return err
		}
		return checkSuffix(value[9:], "0001")
	default:
		return fail(DocumentRUC, ErrInvalidKind, fmt.Sprintf("tercer dígito %d no corresponde a ningún tipo de contribuyente", third))
	}
}

// checkMod11 aplica los coeficientes sobre los primeros len(coefficients) dígitos;
// el verificador está en la posición siguiente.
func checkMod11(value string, coefficients []int) error {
	var sum int
	for i, c := range coefficients {
		sum += int(value[i]-'0') * c
	}
	expected := 0
	if r := sum % 11; r != 0 {
		expected = 11 - r
	}
	got := int(value[len(coefficients)] - '0')
	if got != expected {
		return fail(DocumentRUC, ErrInvalidChecksum, fmt.Sprintf("dígito verificador inválido: esperado %d, recibido %d", expected, got))
	}
	return nil
}

func checkSuffix(suffix, want string) error {
	if suffix != want {
		return fail(DocumentRUC, ErrInvalidSuffix, fmt.Sprintf("el establecimiento debe ser %s, se recibió %s", want, suffix))
	}
	return nil
}

// IsNaturalPersonRUC indica si un RUC válido pertenece a una persona natural.
func IsNaturalPersonRUC(value string) bool {
	if err := ValidateRUC(value); err != nil {
		return false
	}
	return value[2]-'0' < 6
}

// CedulaFromRUC extrae la cédula de un RUC de persona natural.
func CedulaFromRUC(value string) (string, error) {
	if err := ValidateRUC(value); err != nil {
		return "", err
	}
	if value[2]-'0' >= 6 {
		return "", errors.New("sri: el RUC no pertenece a una persona natural")
	}
	return value[:10], nil
}
