package enums

// DigitalDocType labels the entries of a vehicle's digital-document list.
type DigitalDocType string

const (
	DigitalDocTitulo      DigitalDocType = "TITULO_AUTOMOTOR"
	DigitalDocPoliza      DigitalDocType = "POLIZA_SEGURO_DIGITAL"
	DigitalDocCedulaVerde DigitalDocType = "CEDULA_VERDE_DIGITAL"
	DigitalDocOtros       DigitalDocType = "OTROS_DOCUMENTOS"
)

// WellKnownDigitalDocs are probed for every vehicle, in this order. Each probe
// yields exactly one list entry whether or not a file is found.
var WellKnownDigitalDocs = []DigitalDocType{
	DigitalDocTitulo,
	DigitalDocPoliza,
	DigitalDocCedulaVerde,
}

func (d DigitalDocType) String() string {
	return string(d)
}
