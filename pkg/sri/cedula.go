package sri

import "fmt"

// provincias válidas: 01 (Azuay) a 24 (Santa Elena).
const (
	minProvince = 1
	maxProvince = 24
)

// coeficientes módulo 10 para los 9 primeros dígitos de la cédula.
var cedulaCoefficients = [9]int{2, 1, 2, 1, 2, 1, 2, 1, 2}

// ValidateCedula valida una cédula de persona natural: 10 dígitos, provincia 01-24,
// tercer dígito menor a 6 y dígito verificador módulo 10.
func ValidateCedula(value string) error {
	return validateCedula(DocumentCedula, value)
}

func validateCedula(t DocumentType, value string) error {
	if len(value) != 10 || !allDigits(value) {
		return fail(t, ErrInvalidFormat, fmt.Sprintf("la cédula debe tener 10 dígitos, se recibió %q", value))
	}
	if err := checkProvince(t, value); err != nil {
		return err
	}
	if value[2]-'0' > 5 {
		return fail(t, ErrInvalidThirdDigit, fmt.Sprintf("el tercer dígito de una cédula debe ser 0-5, se recibió %c", value[2]))
	}
	expected := cedulaVerifier(value[:9])
	if value[9] != expected {
		return fail(t, ErrInvalidChecksum, fmt.Sprintf("dígito verificador inválido: esperado %c, recibido %c", expected, value[9]))
	}
	return nil
}

// ComputeCedulaVerifier calcula el dígito verificador para los 9 primeros dígitos de una cédula.
func ComputeCedulaVerifier(first9 string) (byte, error) {
	if len(first9) != 9 || !allDigits(first9) {
		return 0, fmt.Errorf("sri: se requieren exactamente 9 dígitos, se recibió %q", first9)
	}
	return cedulaVerifier(first9), nil
}

func cedulaVerifier(first9 string) byte {
	var sum int
	for i := 0; i < 9; i++ {
		p := int(first9[i]-'0') * cedulaCoefficients[i]
		if p >= 10 {
			p -= 9
		}
		sum += p
	}
	return byte('0' + (10-sum%10)%10)
}

func checkProvince(t DocumentType, value string) error {
	province := int(value[0]-'0')*10 + int(value[1]-'0')
	if province < minProvince || province > maxProvince {
		return fail(t, ErrInvalidProvince, fmt.Sprintf("código de provincia %02d fuera de rango (01-24)", province))
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
