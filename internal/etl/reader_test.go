package etl

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macseguridad/flota-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func writeSource(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReaderBOMAndHeaderCleaning(t *testing.T) {
	path := writeSource(t, "documentacion.csv",
		[]byte("\xef\xbb\xbfPatente,Nro Movil,Tipo de Comb.\nAB123CD,17,GNC\n"))

	sum := NewSummary(5)
	frame := NewReader(testLogger()).Read(context.Background(), path, sum)

	assert.Equal(t, []string{"PATENTE", "NRO_MOVIL", "TIPO_DE_COMB"}, frame.Columns)
	require.Len(t, frame.Rows, 1)
	assert.Equal(t, "AB123CD", frame.Rows[0]["PATENTE"])
	assert.Equal(t, "GNC", frame.Rows[0]["TIPO_DE_COMB"])
	assert.Equal(t, 1, sum.SourceRows[path])
}

func TestReaderPlateHeaderAliases(t *testing.T) {
	path := writeSource(t, "multas.csv", []byte("DOMINIO,ACTA\nAE456HG,123\n"))

	frame := NewReader(testLogger()).Read(context.Background(), path, NewSummary(5))

	assert.True(t, frame.HasColumn("PATENTE"))
	assert.Equal(t, "AE456HG", frame.Rows[0]["PATENTE"])
}

func TestReaderLatin1Fallback(t *testing.T) {
	// "AÑO" encoded as Latin-1, invalid as UTF-8
	path := writeSource(t, "legacy.csv", []byte("PATENTE;A\xd1O\nAB123CD;2020\n"))

	frame := NewReader(testLogger()).Read(context.Background(), path, NewSummary(5))

	assert.Equal(t, []string{"PATENTE", "AÑO"}, frame.Columns)
	require.Len(t, frame.Rows, 1)
	assert.Equal(t, "2020", frame.Rows[0]["AÑO"])
}

func TestReaderSniffsSemicolon(t *testing.T) {
	path := writeSource(t, "semi.csv", []byte("PATENTE;DETALLE\nAB123CD;cambio, aceite\n"))

	frame := NewReader(testLogger()).Read(context.Background(), path, NewSummary(5))

	require.Len(t, frame.Rows, 1)
	assert.Equal(t, "cambio, aceite", frame.Rows[0]["DETALLE"])
}

func TestReaderSkipsMalformedAndPadsShortRows(t *testing.T) {
	content := []byte("PATENTE,DETALLE\n" +
		"AB123CD,ok\n" +
		"AE456HG,extra,field,here\n" + // wider than header, dropped
		"AC789ZZ\n" + // short, padded
		",\n") // fully empty, dropped silently
	path := writeSource(t, "mixed.csv", content)

	sum := NewSummary(5)
	frame := NewReader(testLogger()).Read(context.Background(), path, sum)

	require.Len(t, frame.Rows, 2)
	assert.Equal(t, "", frame.Rows[1]["DETALLE"])
	assert.Equal(t, 1, sum.SkippedRows[path])
	assert.Equal(t, 2, sum.SourceRows[path])
}

func TestReaderMissingFile(t *testing.T) {
	sum := NewSummary(5)
	frame := NewReader(testLogger()).Read(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), sum)

	assert.True(t, frame.Empty())
	require.Len(t, sum.MissingSources, 1)
}

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Nro Movil ", "NRO_MOVIL"},
		{"Tipo de Comb.", "TIPO_DE_COMB"},
		{"VENC. GAS", "VENC_GAS"},
		{"AÃ±o", "AÑO"},
		{"\uFEFFPATENTE", "PATENTE"},
		{"KM  REALES", "KM_REALES"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanHeader(tt.in), "input %q", tt.in)
	}
}
