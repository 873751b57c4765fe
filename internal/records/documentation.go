package records

import (
	"time"

	"github.com/macseguridad/flota-backend/pkg/enums"
)

// Documentation is one expiration-bearing paperwork record, many per vehicle.
// Expiration is either a real calendar date or nil, never a sentinel string;
// nil expirations never raise alerts downstream.
type Documentation struct {
	ID         string             `bson:"_id" json:"_id" validate:"required"`
	Plate      string             `bson:"patente" json:"patente" validate:"required"`
	Kind       enums.DocumentKind `bson:"tipo_documento" json:"tipo_documento" validate:"required"`
	Expiration *time.Time         `bson:"fecha_vencimiento" json:"fecha_vencimiento"`
	Insurer    string             `bson:"aseguradora,omitempty" json:"aseguradora,omitempty"`

	// Policy money fields, normalized floats rounded to 2 decimals, 0 on
	// parse failure. Only populated for Poliza_Detalle records sourced from
	// the policy export.
	InsuredSum      float64 `bson:"suma_asegurada,omitempty" json:"suma_asegurada,omitempty"`
	SemesterCost    float64 `bson:"costo_semestral,omitempty" json:"costo_semestral,omitempty"`
	MonthlyCost     float64 `bson:"costo_mensual,omitempty" json:"costo_mensual,omitempty"`
	DeductibleLimit float64 `bson:"monto_franquicia,omitempty" json:"monto_franquicia,omitempty"`
}
