package records

// Collection names as they exist in the document store.
const (
	CollectionVehicles      = "Vehiculos"
	CollectionDocumentation = "Documentacion"
	CollectionMaintenance   = "Mantenimiento"
	CollectionFines         = "Finanzas"
	CollectionComponents    = "Componentes"
	CollectionFleetStatus   = "Flota_Estado"
)

// Collections is the consolidated output of one ETL run, ready for the sink.
type Collections struct {
	Vehicles      []Vehicle
	Documentation []Documentation
	Maintenance   []Maintenance
	Fines         []Fine
	Components    []Component
	FleetStatus   []FleetStatus
}
