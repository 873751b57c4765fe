package etl

import "github.com/macseguridad/flota-backend/pkg/enums"

// SourceKind routes a source file to its consolidation path.
type SourceKind int

const (
	KindMaster SourceKind = iota
	KindPolicies
	KindDeregistration
	KindMaintenance
	KindMileage
	KindFines
	KindComponents
)

// Source declares one known delimited export: its file name, how its columns
// map to canonical fields and how the rows are consolidated. Order in
// DefaultSources is the processing order and therefore decides which source
// wins under the first-writer-wins duplicate policy.
type Source struct {
	File         string
	Kind         SourceKind
	RecordType   enums.RecordType
	Jurisdiction string
	Columns      map[string]string
}

// Canonical vehicle attribute fields produced by the master mapping.
const (
	fieldPlate            = "patente"
	fieldMobileUnit       = "nro_movil"
	fieldFuelType         = "tipo_combustible"
	fieldModelDescription = "descripcion_modelo"
	fieldYear             = "anio"
	fieldColor            = "color"
	fieldTireMeasurements = "medidas_cubiertas"
	fieldRadioKey         = "clave_radio"
	fieldInsurer          = "aseguradora"
)

// expirationColumns maps master-sheet expiration headers to the documentation
// kinds they produce. Probed on the cleaned frame, before column mapping, so
// each cell can fan out into its own record.
var expirationColumns = []struct {
	Column string
	Kind   enums.DocumentKind
}{
	{"VENCIMIENTO_CEDULA", enums.DocumentKindCedula},
	{"VENCIMIENTO_SEGURO", enums.DocumentKindPolizaDetalle},
	{"VENC_GAS", enums.DocumentKindGas},
	{"VTV", enums.DocumentKindVTV},
	{"TARJ_YPF", enums.DocumentKindTarjetaYPF},
}

// componentColumns expands per-column replacement cells into installation
// records. REEMPLAZO_NUEMATICOS_TRASEROS keeps the legacy sheet's typo.
var componentColumns = []struct {
	Column string
	Type   enums.ComponentType
}{
	{"REEMPLAZO_NEUMATICOS_DELANTEROS", enums.ComponentNeumaticoDelantero},
	{"REEMPLAZO_NUEMATICOS_TRASEROS", enums.ComponentNeumaticoTrasero},
	{"REEMPLAZO_BATERIAS", enums.ComponentBateria},
}

// DefaultSources lists every known export in processing order.
func DefaultSources() []Source {
	return []Source{
		{
			File: "documentacion.csv",
			Kind: KindMaster,
			// The legacy master sheet mislabels two headers: MOVIL holds the
			// model description and MODELO holds the model year.
			Columns: map[string]string{
				"PATENTE":              fieldPlate,
				"NRO_MOVIL":            fieldMobileUnit,
				"TIPO_DE_COMB":         fieldFuelType,
				"MOVIL":                fieldModelDescription,
				"MODELO":               fieldYear,
				"COLOR":                fieldColor,
				"MEDIDAS_DE_CUBIERTAS": fieldTireMeasurements,
				"CLAVE_RADIO":          fieldRadioKey,
				"ASEGURADORA":          fieldInsurer,
			},
		},
		{
			File: "polizas.csv",
			Kind: KindPolicies,
			Columns: map[string]string{
				"PATENTE":         fieldPlate,
				"SUMA_ASEGURADA":  "suma_asegurada",
				"COSTO_SEMESTRAL": "costo_semestral",
				"COSTO_MENSUAL":   "costo_mensual",
				"MONTO_FRANQ":     "monto_franquicia",
			},
		},
		{
			File: "vendidos_o_bajas.csv",
			Kind: KindDeregistration,
			Columns: map[string]string{
				"PATENTE":           fieldPlate,
				"DENUNCIA_DE_VENTA": "fecha_estado",
				"TRANSFERENCIA_08":  "motivo_estado_transferencia",
				"OTROS":             "motivo_estado_otro",
			},
		},
		{
			File:       "servicios_renault.csv",
			Kind:       KindMaintenance,
			RecordType: enums.RecordTypeServicioRenault,
			Columns: map[string]string{
				"PATENTE":     fieldPlate,
				"FECHA":       "fecha",
				"KMS":         "kilometraje_km",
				"MOTIVO":      "motivo",
				"DESCRIPCION": "descripcion",
				"LUGAR":       "lugar",
				"MONTO":       "costo_monto",
				"FACTURA_NRO": "factura_nro",
			},
		},
		{
			File:       "servicios_lavallol.csv",
			Kind:       KindMaintenance,
			RecordType: enums.RecordTypeServicioLavallol,
			Columns: map[string]string{
				"PATENTE":     fieldPlate,
				"FECHA":       "fecha",
				"KMS":         "kilometraje_km",
				"MOTIVO":      "motivo",
				"DESCRIPCION": "descripcion",
			},
		},
		{
			File:       "reparaciones.csv",
			Kind:       KindMaintenance,
			RecordType: enums.RecordTypeReparacionExterna,
			Columns: map[string]string{
				"PATENTE":     fieldPlate,
				"FECHA":       "fecha",
				"KILOMETRAJE": "kilometraje_km",
				"MOTIVO":      "motivo",
				"LUGAR":       "lugar",
			},
		},
		{
			File:       "taller_2024.csv",
			Kind:       KindMaintenance,
			RecordType: enums.RecordTypeTallerMovil,
			Columns: map[string]string{
				"PATENTE":  fieldPlate,
				"FECHA":    "fecha",
				"MOTIVO":   "motivo",
				"MOVIL_Nº": "nro_movil",
			},
		},
		{
			File:       "taller_2025.csv",
			Kind:       KindMaintenance,
			RecordType: enums.RecordTypeTallerMovil,
			Columns: map[string]string{
				"PATENTE":  fieldPlate,
				"FECHA":    "fecha",
				"MOTIVO":   "motivo",
				"MOVIL_Nº": "nro_movil",
			},
		},
		{
			File:       "moviles_octubre.csv",
			Kind:       KindMileage,
			RecordType: enums.RecordTypeControlKM,
			Columns: map[string]string{
				"PATENTE":                       fieldPlate,
				"PROX_SERV_KM_ACEITE_Y_FILTROS": "prox_serv_km",
				"OBSERVACIONES":                 "observaciones",
			},
		},
		{
			File:       "moviles_septiembre.csv",
			Kind:       KindMileage,
			RecordType: enums.RecordTypeControlKM,
			Columns: map[string]string{
				"PATENTE":                       fieldPlate,
				"PROX_SERV_KM_ACEITE_Y_FILTROS": "prox_serv_km",
				"OBSERVACIONES":                 "observaciones",
			},
		},
		{
			File:         "infracciones_caba.csv",
			Kind:         KindFines,
			RecordType:   enums.RecordTypeInfraccion,
			Jurisdiction: "CABA",
			Columns: map[string]string{
				"PATENTE":           fieldPlate,
				"DIA":               "dia",
				"AÑO":               "año",
				"IMPORTE":           "monto",
				"FALTA":             "motivo",
				"LUGAR":             "lugar",
				"DATOS_CONDUCTOR":   "conductor",
				"DATOS_ACOMPAÑANTE": "acompanante",
			},
		},
		{
			File:         "infracciones_ezeiza.csv",
			Kind:         KindFines,
			RecordType:   enums.RecordTypeInfraccion,
			Jurisdiction: "EZEIZA",
			Columns: map[string]string{
				"PATENTE":          fieldPlate,
				"FECHA_INFRACCIÓN": "fecha_infraccion",
				"MONTO":            "monto",
				"MOTIVO":           "motivo",
				"LUGAR_INFRACCIÓN": "lugar",
			},
		},
		{
			File:         "infracciones_florencio_varela.csv",
			Kind:         KindFines,
			RecordType:   enums.RecordTypeInfraccion,
			Jurisdiction: "FLORENCIO_VARELA",
			Columns: map[string]string{
				"PATENTE":             fieldPlate,
				"FECHA_DE_OCURRENCIA": "fecha_infraccion",
				"IMPORTE__":           "monto",
				"FALTA":               "motivo",
				"LUGAR_DE_OCURRENCIA": "lugar",
			},
		},
		{
			File:         "infracciones_zamora.csv",
			Kind:         KindFines,
			RecordType:   enums.RecordTypeInfraccion,
			Jurisdiction: "ZAMORA",
			Columns: map[string]string{
				"PATENTE":          fieldPlate,
				"FECHA_INFRACCIÓN": "fecha_infraccion",
				"IMPORTE":          "monto",
				"FALTA":            "motivo",
				"LUGAR":            "lugar",
			},
		},
		{
			File:         "multas_prov_bs_as.csv",
			Kind:         KindFines,
			RecordType:   enums.RecordTypeInfraccion,
			Jurisdiction: "BS_AS",
			Columns: map[string]string{
				"PATENTE":             fieldPlate,
				"FECHA_DE_OCURRENCIA": "fecha_infraccion",
				"IMPORTE__":           "monto",
				"FALTA":               "motivo",
				"LUGAR_DE_OCURRENCIA": "lugar",
			},
		},
		{
			File: "baterias_neumaticos.csv",
			Kind: KindComponents,
		},
		{
			File: "alaskan.csv",
			Kind: KindComponents,
		},
	}
}
