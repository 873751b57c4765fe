package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentKindIsValid(t *testing.T) {
	assert.True(t, DocumentKindPolizaDetalle.IsValid())
	assert.True(t, DocumentKindTarjetaYPF.IsValid())
	assert.False(t, DocumentKind("SEGURO").IsValid())
	assert.False(t, DocumentKind("").IsValid())
}

func TestParseDocumentKind(t *testing.T) {
	kind, err := ParseDocumentKind("GAS")
	require.NoError(t, err)
	assert.Equal(t, DocumentKindGas, kind)

	_, err = ParseDocumentKind("gas")
	assert.Error(t, err)
}

func TestParseRecordType(t *testing.T) {
	rt, err := ParseRecordType("INFRACCION")
	require.NoError(t, err)
	assert.Equal(t, RecordTypeInfraccion, rt)

	_, err = ParseRecordType("DESCONOCIDO")
	assert.Error(t, err)
}
