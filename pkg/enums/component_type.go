package enums

// ComponentType names the replaceable vehicle components tracked by the
// installation records.
type ComponentType string

const (
	ComponentNeumaticoDelantero ComponentType = "Neumatico_Delantero"
	ComponentNeumaticoTrasero   ComponentType = "Neumatico_Trasero"
	ComponentBateria            ComponentType = "Bateria"
)

func (c ComponentType) String() string {
	return string(c)
}
