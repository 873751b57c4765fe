package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumnsRenamesAndProjects(t *testing.T) {
	frame := Frame{
		Columns: []string{"PATENTE", "NRO_MOVIL", "COLUMNA_RARA"},
		Rows: []Row{
			{"PATENTE": "AB123CD", "NRO_MOVIL": "17", "COLUMNA_RARA": "x"},
		},
	}
	mapped := MapColumns(frame, map[string]string{
		"PATENTE":   "patente",
		"NRO MOVIL": "nro_movil",
	})

	assert.Equal(t, []string{"patente", "nro_movil"}, mapped.Columns)
	require.Len(t, mapped.Rows, 1)
	assert.Equal(t, "AB123CD", mapped.Rows[0]["patente"])
	assert.Equal(t, "17", mapped.Rows[0]["nro_movil"])
	_, leaked := mapped.Rows[0]["COLUMNA_RARA"]
	assert.False(t, leaked)
}

func TestMapColumnsMissingSourceColumns(t *testing.T) {
	frame := Frame{
		Columns: []string{"PATENTE"},
		Rows:    []Row{{"PATENTE": "AB123CD"}},
	}
	mapped := MapColumns(frame, map[string]string{
		"PATENTE":     "patente",
		"ASEGURADORA": "aseguradora",
	})

	assert.Equal(t, []string{"patente"}, mapped.Columns)
	assert.False(t, mapped.HasColumn("aseguradora"))
}

func TestMapColumnsEmptyInputs(t *testing.T) {
	assert.True(t, MapColumns(Frame{}, map[string]string{"A": "a"}).Empty())
	assert.True(t, MapColumns(Frame{Columns: []string{"A"}}, nil).Empty())
	assert.True(t, MapColumns(Frame{
		Columns: []string{"OTRA"},
		Rows:    []Row{{"OTRA": "v"}},
	}, map[string]string{"PATENTE": "patente"}).Empty())
}
