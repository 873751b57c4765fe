package records

import (
	"time"

	"github.com/macseguridad/flota-backend/pkg/enums"
)

// Fine is one traffic-infraction record, tagged with the jurisdiction derived
// from its source file.
type Fine struct {
	ID           string           `bson:"_id" json:"_id" validate:"required"`
	Plate        string           `bson:"patente" json:"patente" validate:"required"`
	RecordType   enums.RecordType `bson:"tipo_registro" json:"tipo_registro" validate:"required"`
	Jurisdiction string           `bson:"jurisdiccion" json:"jurisdiccion" validate:"required"`
	Date         *time.Time       `bson:"fecha_infraccion" json:"fecha_infraccion"`
	Amount       float64          `bson:"monto" json:"monto"`
	Reason       string           `bson:"motivo,omitempty" json:"motivo,omitempty"`
	Place        string           `bson:"lugar,omitempty" json:"lugar,omitempty"`
	Driver       string           `bson:"conductor,omitempty" json:"conductor,omitempty"`
	Passenger    string           `bson:"acompanante,omitempty" json:"acompanante,omitempty"`
}
