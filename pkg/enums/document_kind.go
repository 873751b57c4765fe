package enums

import "fmt"

// DocumentKind identifies the expiration-bearing paperwork tracked per vehicle.
// The literals match the keys the legacy spreadsheets and consumers use.
type DocumentKind string

const (
	DocumentKindCedula        DocumentKind = "Cedula"
	DocumentKindPolizaDetalle DocumentKind = "Poliza_Detalle"
	DocumentKindGas           DocumentKind = "GAS"
	DocumentKindVTV           DocumentKind = "VTV"
	DocumentKindTarjetaYPF    DocumentKind = "TARJ YPF"
)

var validDocumentKinds = []DocumentKind{
	DocumentKindCedula,
	DocumentKindPolizaDetalle,
	DocumentKindGas,
	DocumentKindVTV,
	DocumentKindTarjetaYPF,
}

// String returns the literal string for the kind.
func (d DocumentKind) String() string {
	return string(d)
}

// IsValid reports whether the kind is known.
func (d DocumentKind) IsValid() bool {
	for _, candidate := range validDocumentKinds {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentKind converts raw input into a DocumentKind.
func ParseDocumentKind(value string) (DocumentKind, error) {
	for _, candidate := range validDocumentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document kind %q", value)
}
