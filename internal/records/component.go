package records

import (
	"time"

	"github.com/macseguridad/flota-backend/pkg/enums"
)

// Component is one tire/battery installation event.
type Component struct {
	ID            string              `bson:"_id" json:"_id" validate:"required"`
	Plate         string              `bson:"patente" json:"patente" validate:"required"`
	ComponentType enums.ComponentType `bson:"tipo_componente" json:"tipo_componente" validate:"required"`
	InstalledAt   *time.Time          `bson:"fecha_instalacion" json:"fecha_instalacion"`
	InstalledKM   *int64              `bson:"kilometraje_instalacion" json:"kilometraje_instalacion"`
}
