package records

import "time"

// FleetStatus captures a vehicle leaving the fleet (sale or deregistration).
type FleetStatus struct {
	ID             string     `bson:"_id" json:"_id" validate:"required"`
	Plate          string     `bson:"patente" json:"patente" validate:"required"`
	Date           *time.Time `bson:"fecha_estado" json:"fecha_estado"`
	TransferReason string     `bson:"motivo_estado_transferencia,omitempty" json:"motivo_estado_transferencia,omitempty"`
	OtherReason    string     `bson:"motivo_estado_otro,omitempty" json:"motivo_estado_otro,omitempty"`
	Status         string     `bson:"estado" json:"estado"`
	Type           string     `bson:"tipo" json:"tipo"`
}
