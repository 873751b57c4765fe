package records

import (
	"time"

	"github.com/macseguridad/flota-backend/pkg/enums"
)

// Maintenance is one workshop/service event tied to a vehicle.
type Maintenance struct {
	ID          string           `bson:"_id" json:"_id" validate:"required"`
	Plate       string           `bson:"patente" json:"patente" validate:"required"`
	RecordType  enums.RecordType `bson:"tipo_registro" json:"tipo_registro" validate:"required"`
	Date        *time.Time       `bson:"fecha" json:"fecha"`
	KilometersK *int64           `bson:"kilometraje_km" json:"kilometraje_km"`
	Reason      string           `bson:"motivo,omitempty" json:"motivo,omitempty"`
	Description string           `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	Place       string           `bson:"lugar,omitempty" json:"lugar,omitempty"`
	Cost        float64          `bson:"costo_monto" json:"costo_monto"`
	InvoiceNo   string           `bson:"factura_nro,omitempty" json:"factura_nro,omitempty"`
	MobileUnit  string           `bson:"nro_movil,omitempty" json:"nro_movil,omitempty"`
	// NextServiceKM comes from the mileage-control exports.
	NextServiceKM *int64 `bson:"prox_serv_km,omitempty" json:"prox_serv_km,omitempty"`
	Observations  string `bson:"observaciones,omitempty" json:"observaciones,omitempty"`
}
