package records

import "github.com/macseguridad/flota-backend/pkg/enums"

// Vehicle is the canonical fleet entity, keyed by the normalized plate. The
// plate doubles as the document id so sink upserts are idempotent per vehicle.
type Vehicle struct {
	Plate            string `bson:"_id" json:"_id" validate:"required,alphanum"`
	MobileUnit       string `bson:"nro_movil" json:"nro_movil"`
	FuelType         string `bson:"tipo_combustible" json:"tipo_combustible"`
	ModelDescription string `bson:"descripcion_modelo" json:"descripcion_modelo"`
	Year             int    `bson:"anio" json:"anio" validate:"gte=0"`
	Color            string `bson:"color" json:"color"`
	TireMeasurements string `bson:"medidas_cubiertas" json:"medidas_cubiertas"`
	RadioKey         string `bson:"clave_radio" json:"clave_radio"`
	// Active is recomputed every run: false iff the plate shows up in the
	// deregistration source.
	Active bool `bson:"activo" json:"activo"`
	// DigitalDocuments is fully rebuilt by the asset prober each run, never
	// patched incrementally.
	DigitalDocuments []DigitalDocument `bson:"documentos_digitales" json:"documentos_digitales"`
}

// DigitalDocument records the outcome of one file-tree probe. Found entries
// carry the discovered name and its store path; not-found entries keep both
// null so consumers can distinguish "absent" from "empty".
type DigitalDocument struct {
	Type         enums.DigitalDocType `bson:"tipo" json:"tipo"`
	Filename     *string              `bson:"nombre_archivo" json:"nombre_archivo"`
	ExpectedPath *string              `bson:"path_esperado" json:"path_esperado"`
	Exists       bool                 `bson:"existe_fisicamente" json:"existe_fisicamente"`
}
