package etl

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/macseguridad/flota-backend/internal/records"
	"github.com/macseguridad/flota-backend/pkg/enums"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

// Consolidator merges per-source partial rows into canonical entities keyed by
// normalized plate.
type Consolidator struct {
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
	pending  pendingDocs
}

func NewConsolidator(logg *logger.Logger) *Consolidator {
	return &Consolidator{
		logg:     logg,
		validate: validator.New(),
		now:      time.Now,
	}
}

// BuildVehicles groups master rows by normalized plate and merges duplicates
// under the first-non-null-wins policy: within a plate, the first source row
// (in file order) to populate an attribute keeps it; later non-null values for
// an already-populated attribute are discarded. This is deliberate — the
// master export lists the freshest row first — and must not be flipped to
// last-writer-wins by accident.
//
// The same pass fans each expiration cell out into a documentation record.
func (c *Consolidator) BuildVehicles(ctx context.Context, frame Frame, sum *Summary) ([]records.Vehicle, []records.Documentation) {
	if frame.Empty() || !frame.HasColumn("PATENTE") {
		return nil, nil
	}

	mapped := MapColumns(frame, DefaultSources()[0].Columns)

	type partial struct {
		vehicle records.Vehicle
		seen    map[string]bool
	}
	var order []string
	byPlate := make(map[string]*partial)

	for i, row := range mapped.Rows {
		plate := NormalizePlate(row[fieldPlate])
		if plate == "" {
			sum.RecordInvalid(CategoryPlate, row[fieldPlate])
			continue
		}

		entry, ok := byPlate[plate]
		if !ok {
			entry = &partial{
				vehicle: records.Vehicle{Plate: plate, Active: true},
				seen:    make(map[string]bool),
			}
			byPlate[plate] = entry
			order = append(order, plate)
		}
		c.mergeVehicleRow(&entry.vehicle, entry.seen, row, sum)

		// Expiration cells live on the raw cleaned frame, one documentation
		// record per non-sentinel cell.
		c.extractExpirations(frame.Rows[i], plate, row[fieldInsurer], sum)
	}

	vehicles := make([]records.Vehicle, 0, len(order))
	for _, plate := range order {
		v := byPlate[plate].vehicle
		if err := c.validate.Struct(v); err != nil {
			sum.RecordInvalid(CategoryRecord, plate)
			c.logg.Warn(c.logg.WithPlate(ctx, plate), "vehicle failed validation, keeping coerced record")
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, c.takeDocumentation()
}

func (c *Consolidator) mergeVehicleRow(v *records.Vehicle, seen map[string]bool, row Row, sum *Summary) {
	setString := func(field, raw string, dst *string) {
		if seen[field] || IsNullSentinel(raw) {
			return
		}
		seen[field] = true
		*dst = strings.TrimSpace(raw)
	}

	setString(fieldFuelType, row[fieldFuelType], &v.FuelType)
	setString(fieldModelDescription, row[fieldModelDescription], &v.ModelDescription)
	setString(fieldColor, row[fieldColor], &v.Color)
	setString(fieldTireMeasurements, row[fieldTireMeasurements], &v.TireMeasurements)
	setString(fieldRadioKey, row[fieldRadioKey], &v.RadioKey)

	if !seen[fieldMobileUnit] {
		if unit := NormalizeMobileUnit(row[fieldMobileUnit]); unit != "" {
			seen[fieldMobileUnit] = true
			v.MobileUnit = unit
		}
	}

	if !seen[fieldYear] && !IsNullSentinel(row[fieldYear]) {
		year, status := ParseYear(row[fieldYear])
		if status == ParseDefaulted {
			sum.RecordInvalid(CategoryRecord, row[fieldYear])
		}
		seen[fieldYear] = true
		v.Year = year
	}
}

// pendingDocs accumulates documentation rows across BuildVehicles and
// AppendPolicies calls within a run.
type pendingDocs struct {
	docs []records.Documentation
}

func (c *Consolidator) extractExpirations(raw Row, plate, insurer string, sum *Summary) {
	for _, exp := range expirationColumns {
		value, ok := raw[exp.Column]
		if !ok || IsNullSentinel(value) {
			continue
		}
		expiration, status := ParseDate(value, c.now())
		if status == ParseDefaulted {
			sum.RecordInvalid(CategoryDate, value)
		}
		doc := records.Documentation{
			ID:         uuid.NewString(),
			Plate:      plate,
			Kind:       exp.Kind,
			Expiration: expiration,
		}
		if exp.Kind == enums.DocumentKindPolizaDetalle && !IsNullSentinel(insurer) {
			doc.Insurer = strings.TrimSpace(insurer)
		}
		c.pending.docs = append(c.pending.docs, doc)
	}
}

func (c *Consolidator) takeDocumentation() []records.Documentation {
	docs := c.pending.docs
	c.pending.docs = nil
	return docs
}

// AppendPolicies converts policy rows into Poliza_Detalle documentation
// records carrying the normalized money fields.
func (c *Consolidator) AppendPolicies(frame Frame, src Source, sum *Summary) []records.Documentation {
	mapped := MapColumns(frame, src.Columns)
	if mapped.Empty() || !mapped.HasColumn(fieldPlate) {
		return nil
	}

	money := func(raw string, sum *Summary) float64 {
		amount, status := ParseCurrency(raw)
		if status == ParseDefaulted {
			sum.RecordInvalid(CategoryCurrency, raw)
		}
		return amount
	}

	docs := make([]records.Documentation, 0, len(mapped.Rows))
	for _, row := range mapped.Rows {
		plate := NormalizePlate(row[fieldPlate])
		if plate == "" {
			sum.RecordInvalid(CategoryPlate, row[fieldPlate])
			continue
		}
		docs = append(docs, records.Documentation{
			ID:              uuid.NewString(),
			Plate:           plate,
			Kind:            enums.DocumentKindPolizaDetalle,
			InsuredSum:      money(row["suma_asegurada"], sum),
			SemesterCost:    money(row["costo_semestral"], sum),
			MonthlyCost:     money(row["costo_mensual"], sum),
			DeductibleLimit: money(row["monto_franquicia"], sum),
		})
	}
	return docs
}

// ApplyDeregistrations flips active=false for every vehicle whose plate shows
// up in the deregistration source and emits the matching fleet-status records.
// Vehicles never present in the source stay active.
func (c *Consolidator) ApplyDeregistrations(frame Frame, src Source, vehicles []records.Vehicle, sum *Summary) []records.FleetStatus {
	mapped := MapColumns(frame, src.Columns)
	if mapped.Empty() || !mapped.HasColumn(fieldPlate) {
		return nil
	}

	deregistered := make(map[string]bool)
	statuses := make([]records.FleetStatus, 0, len(mapped.Rows))
	for _, row := range mapped.Rows {
		plate := NormalizePlate(row[fieldPlate])
		if plate == "" {
			sum.RecordInvalid(CategoryPlate, row[fieldPlate])
			continue
		}
		deregistered[plate] = true

		date, status := ParseDate(row["fecha_estado"], c.now())
		if status == ParseDefaulted {
			sum.RecordInvalid(CategoryDate, row["fecha_estado"])
		}
		statuses = append(statuses, records.FleetStatus{
			ID:             uuid.NewString(),
			Plate:          plate,
			Date:           date,
			TransferReason: row["motivo_estado_transferencia"],
			OtherReason:    row["motivo_estado_otro"],
			Status:         "Baja",
			Type:           "BAJA_DEFINITIVA",
		})
	}

	for i := range vehicles {
		if deregistered[vehicles[i].Plate] {
			vehicles[i].Active = false
		}
	}
	return statuses
}

// BuildMaintenance converts mapped maintenance/mileage rows into records
// tagged with the source's record type.
func (c *Consolidator) BuildMaintenance(frame Frame, src Source, sum *Summary) []records.Maintenance {
	mapped := MapColumns(frame, src.Columns)
	if mapped.Empty() || !mapped.HasColumn(fieldPlate) {
		return nil
	}

	out := make([]records.Maintenance, 0, len(mapped.Rows))
	for _, row := range mapped.Rows {
		plate := NormalizePlate(row[fieldPlate])
		if plate == "" {
			sum.RecordInvalid(CategoryPlate, row[fieldPlate])
			continue
		}

		rec := records.Maintenance{
			ID:          uuid.NewString(),
			Plate:       plate,
			RecordType:  src.RecordType,
			Reason:      row["motivo"],
			Description: row["descripcion"],
			Place:       row["lugar"],
			InvoiceNo:   row["factura_nro"],
			MobileUnit:  NormalizeMobileUnit(row["nro_movil"]),
		}

		if raw, ok := row["fecha"]; ok && raw != "" {
			date, status := ParseDate(raw, c.now())
			if status == ParseDefaulted {
				sum.RecordInvalid(CategoryDate, raw)
			}
			rec.Date = date
		}
		if raw, ok := row["kilometraje_km"]; ok && raw != "" {
			km, status := ParseKilometers(raw)
			if status == ParseDefaulted {
				sum.RecordInvalid(CategoryKilometer, raw)
			}
			rec.KilometersK = km
		}
		if raw, ok := row["costo_monto"]; ok {
			amount, status := ParseCurrency(raw)
			if status == ParseDefaulted {
				sum.RecordInvalid(CategoryCurrency, raw)
			}
			rec.Cost = amount
		}
		if raw, ok := row["prox_serv_km"]; ok && raw != "" {
			km, status := ParseKilometers(raw)
			if status == ParseDefaulted {
				sum.RecordInvalid(CategoryKilometer, raw)
			}
			rec.NextServiceKM = km
		}
		rec.Observations = row["observaciones"]

		out = append(out, rec)
	}
	return out
}

// BuildFines converts mapped infraction rows, tagging the jurisdiction
// declared by the source. The CABA export splits the date across DIA and AÑO
// columns; they are joined before date parsing.
func (c *Consolidator) BuildFines(frame Frame, src Source, sum *Summary) []records.Fine {
	mapped := MapColumns(frame, src.Columns)
	if mapped.Empty() || !mapped.HasColumn(fieldPlate) {
		return nil
	}

	out := make([]records.Fine, 0, len(mapped.Rows))
	for _, row := range mapped.Rows {
		plate := NormalizePlate(row[fieldPlate])
		if plate == "" {
			sum.RecordInvalid(CategoryPlate, row[fieldPlate])
			continue
		}

		rawDate := row["fecha_infraccion"]
		if rawDate == "" && row["dia"] != "" && row["año"] != "" {
			rawDate = row["dia"] + "/" + row["año"]
		}

		fine := records.Fine{
			ID:           uuid.NewString(),
			Plate:        plate,
			RecordType:   src.RecordType,
			Jurisdiction: src.Jurisdiction,
			Reason:       row["motivo"],
			Place:        row["lugar"],
			Driver:       row["conductor"],
			Passenger:    row["acompanante"],
		}
		if rawDate != "" {
			date, status := ParseDate(rawDate, c.now())
			if status == ParseDefaulted {
				sum.RecordInvalid(CategoryDate, rawDate)
			}
			fine.Date = date
		}
		amount, status := ParseCurrency(row["monto"])
		if status == ParseDefaulted {
			sum.RecordInvalid(CategoryCurrency, row["monto"])
		}
		fine.Amount = amount

		out = append(out, fine)
	}
	return out
}

// BuildComponents expands each replacement column of a component source into
// its own installation record, capturing the row's KMS reading when present.
func (c *Consolidator) BuildComponents(frame Frame, sum *Summary) []records.Component {
	if frame.Empty() || !frame.HasColumn("PATENTE") {
		return nil
	}

	var out []records.Component
	for _, row := range frame.Rows {
		plate := NormalizePlate(row["PATENTE"])
		if plate == "" {
			sum.RecordInvalid(CategoryPlate, row["PATENTE"])
			continue
		}

		var installedKM *int64
		if raw := row["KMS"]; raw != "" && !IsNullSentinel(raw) {
			km, status := ParseKilometers(raw)
			if status == ParseDefaulted {
				sum.RecordInvalid(CategoryKilometer, raw)
			}
			installedKM = km
		}

		for _, comp := range componentColumns {
			raw, ok := row[comp.Column]
			if !ok || IsNullSentinel(raw) {
				continue
			}
			date, status := ParseDate(raw, c.now())
			if status == ParseDefaulted {
				sum.RecordInvalid(CategoryDate, raw)
			}
			out = append(out, records.Component{
				ID:            uuid.NewString(),
				Plate:         plate,
				ComponentType: comp.Type,
				InstalledAt:   date,
				InstalledKM:   installedKM,
			})
		}
	}
	return out
}

// EnsureIDs backfills a generated id on any record still missing one. No
// record may reach the sink without a non-empty unique id.
func EnsureIDs(cols *records.Collections) {
	fill := func(id *string) {
		if strings.TrimSpace(*id) == "" {
			*id = uuid.NewString()
		}
	}
	for i := range cols.Documentation {
		fill(&cols.Documentation[i].ID)
	}
	for i := range cols.Maintenance {
		fill(&cols.Maintenance[i].ID)
	}
	for i := range cols.Fines {
		fill(&cols.Fines[i].ID)
	}
	for i := range cols.Components {
		fill(&cols.Components[i].ID)
	}
	for i := range cols.FleetStatus {
		fill(&cols.FleetStatus[i].ID)
	}
}
