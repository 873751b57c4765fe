package etl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macseguridad/flota-backend/internal/records"
	"github.com/macseguridad/flota-backend/pkg/enums"
)

func sourceFor(t *testing.T, file string) Source {
	t.Helper()
	for _, s := range DefaultSources() {
		if s.File == file {
			return s
		}
	}
	t.Fatalf("no source declared for %s", file)
	return Source{}
}

func masterFrame(rows ...Row) Frame {
	return Frame{
		Columns: []string{
			"PATENTE", "NRO_MOVIL", "TIPO_DE_COMB", "MOVIL", "MODELO", "COLOR",
			"ASEGURADORA", "VENC_GAS", "VENCIMIENTO_SEGURO",
		},
		Rows: rows,
	}
}

func TestBuildVehiclesFirstNonNullWins(t *testing.T) {
	frame := masterFrame(
		Row{"PATENTE": "ab 123-cd", "COLOR": "Blanco", "NRO_MOVIL": ""},
		Row{"PATENTE": "AB123CD", "COLOR": "Negro", "NRO_MOVIL": "17.0", "MODELO": "2020"},
	)

	cons := NewConsolidator(testLogger())
	vehicles, _ := cons.BuildVehicles(context.Background(), frame, NewSummary(5))

	require.Len(t, vehicles, 1)
	v := vehicles[0]
	assert.Equal(t, "AB123CD", v.Plate)
	// the first row populated color; the second row must not overwrite it
	assert.Equal(t, "Blanco", v.Color)
	// the first row left these null, so the second row fills them
	assert.Equal(t, "17", v.MobileUnit)
	assert.Equal(t, 2020, v.Year)
	assert.True(t, v.Active)
}

func TestBuildVehiclesMislabeledMasterHeaders(t *testing.T) {
	frame := masterFrame(
		Row{"PATENTE": "AB123CD", "MOVIL": "Renault Kangoo", "MODELO": "2019"},
	)

	cons := NewConsolidator(testLogger())
	vehicles, _ := cons.BuildVehicles(context.Background(), frame, NewSummary(5))

	require.Len(t, vehicles, 1)
	assert.Equal(t, "Renault Kangoo", vehicles[0].ModelDescription)
	assert.Equal(t, 2019, vehicles[0].Year)
}

func TestBuildVehiclesExtractsExpirations(t *testing.T) {
	frame := masterFrame(
		Row{
			"PATENTE":            "AB123CD",
			"ASEGURADORA":        "La Caja",
			"VENC_GAS":           "NOV-25",
			"VENCIMIENTO_SEGURO": "31/12/2024",
		},
	)

	cons := NewConsolidator(testLogger())
	_, docs := cons.BuildVehicles(context.Background(), frame, NewSummary(5))

	require.Len(t, docs, 2)
	byKind := make(map[enums.DocumentKind]records.Documentation)
	for _, d := range docs {
		byKind[d.Kind] = d
		assert.Equal(t, "AB123CD", d.Plate)
		assert.NotEmpty(t, d.ID)
	}

	gas := byKind[enums.DocumentKindGas]
	require.NotNil(t, gas.Expiration)
	assert.Equal(t, time.November, gas.Expiration.Month())
	assert.Equal(t, 2025, gas.Expiration.Year())
	assert.Empty(t, gas.Insurer)

	seguro := byKind[enums.DocumentKindPolizaDetalle]
	require.NotNil(t, seguro.Expiration)
	assert.Equal(t, "La Caja", seguro.Insurer)
}

func TestBuildVehiclesNullExpirationStaysNull(t *testing.T) {
	frame := masterFrame(
		Row{"PATENTE": "AB123CD", "VENC_GAS": "SIN VENCIMIENTO"},
	)

	cons := NewConsolidator(testLogger())
	_, docs := cons.BuildVehicles(context.Background(), frame, NewSummary(5))

	assert.Empty(t, docs)
}

func TestBuildVehiclesDropsEmptyPlates(t *testing.T) {
	frame := masterFrame(
		Row{"PATENTE": "  ", "COLOR": "Gris"},
		Row{"PATENTE": "AB123CD"},
	)

	sum := NewSummary(5)
	cons := NewConsolidator(testLogger())
	vehicles, _ := cons.BuildVehicles(context.Background(), frame, sum)

	require.Len(t, vehicles, 1)
	assert.Equal(t, 1, sum.InvalidCounts[CategoryPlate])
}

func TestAppendPolicies(t *testing.T) {
	src := sourceFor(t, "polizas.csv")
	frame := Frame{
		Columns: []string{"PATENTE", "SUMA_ASEGURADA", "COSTO_MENSUAL", "MONTO_FRANQ"},
		Rows: []Row{
			{"PATENTE": "AB123CD", "SUMA_ASEGURADA": "84.137,58", "COSTO_MENSUAL": "1.250,75", "MONTO_FRANQ": "no tiene"},
		},
	}

	sum := NewSummary(5)
	docs := NewConsolidator(testLogger()).AppendPolicies(frame, src, sum)

	require.Len(t, docs, 1)
	d := docs[0]
	assert.Equal(t, enums.DocumentKindPolizaDetalle, d.Kind)
	assert.InDelta(t, 84137.58, d.InsuredSum, 0.0001)
	assert.InDelta(t, 1250.75, d.MonthlyCost, 0.0001)
	assert.Zero(t, d.DeductibleLimit)
}

func TestApplyDeregistrations(t *testing.T) {
	src := sourceFor(t, "vendidos_o_bajas.csv")
	frame := Frame{
		Columns: []string{"PATENTE", "DENUNCIA_DE_VENTA", "OTROS"},
		Rows: []Row{
			{"PATENTE": "ab123cd", "DENUNCIA_DE_VENTA": "10/06/2023", "OTROS": "siniestro total"},
		},
	}
	vehicles := []records.Vehicle{
		{Plate: "AB123CD", Active: true},
		{Plate: "AE456HG", Active: true},
	}

	statuses := NewConsolidator(testLogger()).ApplyDeregistrations(frame, src, vehicles, NewSummary(5))

	assert.False(t, vehicles[0].Active)
	assert.True(t, vehicles[1].Active)

	require.Len(t, statuses, 1)
	st := statuses[0]
	assert.Equal(t, "AB123CD", st.Plate)
	assert.Equal(t, "Baja", st.Status)
	assert.Equal(t, "BAJA_DEFINITIVA", st.Type)
	assert.Equal(t, "siniestro total", st.OtherReason)
	require.NotNil(t, st.Date)
	assert.Equal(t, time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC), *st.Date)
}

func TestBuildMaintenance(t *testing.T) {
	src := sourceFor(t, "servicios_renault.csv")
	frame := Frame{
		Columns: []string{"PATENTE", "FECHA", "KMS", "MOTIVO", "MONTO"},
		Rows: []Row{
			{"PATENTE": "AB123CD", "FECHA": "05/02/2024", "KMS": "128500", "MOTIVO": "service 130k", "MONTO": "420,00"},
		},
	}

	out := NewConsolidator(testLogger()).BuildMaintenance(frame, src, NewSummary(5))

	require.Len(t, out, 1)
	m := out[0]
	assert.Equal(t, enums.RecordTypeServicioRenault, m.RecordType)
	require.NotNil(t, m.KilometersK)
	assert.Equal(t, int64(128500), *m.KilometersK)
	assert.InDelta(t, 420.0, m.Cost, 0.0001)
	require.NotNil(t, m.Date)
	assert.Equal(t, time.February, m.Date.Month())
}

func TestBuildFinesCABAJoinsSplitDate(t *testing.T) {
	src := sourceFor(t, "infracciones_caba.csv")
	frame := Frame{
		Columns: []string{"PATENTE", "DIA", "AÑO", "IMPORTE", "FALTA"},
		Rows: []Row{
			{"PATENTE": "AB123CD", "DIA": "15/03", "AÑO": "2024", "IMPORTE": "12.500,00", "FALTA": "exceso de velocidad"},
		},
	}

	out := NewConsolidator(testLogger()).BuildFines(frame, src, NewSummary(5))

	require.Len(t, out, 1)
	f := out[0]
	assert.Equal(t, "CABA", f.Jurisdiction)
	assert.Equal(t, enums.RecordTypeInfraccion, f.RecordType)
	require.NotNil(t, f.Date)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), *f.Date)
	assert.InDelta(t, 12500.0, f.Amount, 0.0001)
}

func TestBuildFinesJurisdictionPerSource(t *testing.T) {
	src := sourceFor(t, "infracciones_ezeiza.csv")
	frame := Frame{
		Columns: []string{"PATENTE", "FECHA_INFRACCIÓN", "MONTO"},
		Rows: []Row{
			{"PATENTE": "AE456HG", "FECHA_INFRACCIÓN": "01/08/2024", "MONTO": "8000"},
		},
	}

	out := NewConsolidator(testLogger()).BuildFines(frame, src, NewSummary(5))

	require.Len(t, out, 1)
	assert.Equal(t, "EZEIZA", out[0].Jurisdiction)
}

func TestBuildComponentsExpandsColumns(t *testing.T) {
	frame := Frame{
		Columns: []string{"PATENTE", "KMS", "REEMPLAZO_BATERIAS", "REEMPLAZO_NUEMATICOS_TRASEROS"},
		Rows: []Row{
			{
				"PATENTE":                       "AB123CD",
				"KMS":                           "90400",
				"REEMPLAZO_BATERIAS":            "10/01/2024",
				"REEMPLAZO_NUEMATICOS_TRASEROS": "n/a",
			},
		},
	}

	out := NewConsolidator(testLogger()).BuildComponents(frame, NewSummary(5))

	require.Len(t, out, 1)
	comp := out[0]
	assert.Equal(t, enums.ComponentBateria, comp.ComponentType)
	require.NotNil(t, comp.InstalledAt)
	assert.Equal(t, time.January, comp.InstalledAt.Month())
	require.NotNil(t, comp.InstalledKM)
	assert.Equal(t, int64(90400), *comp.InstalledKM)
}

func TestEnsureIDs(t *testing.T) {
	cols := &records.Collections{
		Documentation: []records.Documentation{{Plate: "AB123CD"}},
		Maintenance:   []records.Maintenance{{ID: "keep-me", Plate: "AB123CD"}},
		Fines:         []records.Fine{{Plate: "AB123CD"}},
		Components:    []records.Component{{Plate: "AB123CD"}},
		FleetStatus:   []records.FleetStatus{{Plate: "AB123CD"}},
	}

	EnsureIDs(cols)

	assert.NotEmpty(t, cols.Documentation[0].ID)
	assert.Equal(t, "keep-me", cols.Maintenance[0].ID)
	assert.NotEmpty(t, cols.Fines[0].ID)
	assert.NotEmpty(t, cols.Components[0].ID)
	assert.NotEmpty(t, cols.FleetStatus[0].ID)
}
