package enums

import "fmt"

// RecordType is the source-file provenance tag carried by maintenance and
// financial records. Downstream classification heuristics key off it.
type RecordType string

const (
	RecordTypeServicioRenault   RecordType = "SERVICIO_RENAULT"
	RecordTypeServicioLavallol  RecordType = "SERVICIO_LAVALLOL"
	RecordTypeReparacionExterna RecordType = "REPARACION_EXTERNA"
	RecordTypeTallerMovil       RecordType = "TALLER_MOVIL"
	RecordTypeControlKM         RecordType = "CONTROL_KM_SERVICIO"
	RecordTypeInfraccion        RecordType = "INFRACCION"
)

var validRecordTypes = []RecordType{
	RecordTypeServicioRenault,
	RecordTypeServicioLavallol,
	RecordTypeReparacionExterna,
	RecordTypeTallerMovil,
	RecordTypeControlKM,
	RecordTypeInfraccion,
}

func (r RecordType) String() string {
	return string(r)
}

// IsValid reports whether the record type is known.
func (r RecordType) IsValid() bool {
	for _, candidate := range validRecordTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRecordType converts raw input into a RecordType.
func ParseRecordType(value string) (RecordType, error) {
	for _, candidate := range validRecordTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record type %q", value)
}
