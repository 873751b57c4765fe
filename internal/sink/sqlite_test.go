package sink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "sink.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func countRows(t *testing.T, s *SQLite, collection string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.conn.Model(&documentRow{}).Where("collection = ?", collection).Count(&n).Error)
	return n
}

func TestSQLiteUpsertByKey(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	n, err := s.UpsertByKey(ctx, "Vehiculos", "_id", []any{
		map[string]any{"_id": "AB123CD", "color": "Blanco"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// same key again overwrites the payload instead of adding a row
	n, err = s.UpsertByKey(ctx, "Vehiculos", "_id", []any{
		map[string]any{"_id": "AB123CD", "color": "Negro"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(1), countRows(t, s, "Vehiculos"))

	var row documentRow
	require.NoError(t, s.conn.Where("collection = ? AND doc_key = ?", "Vehiculos", "AB123CD").First(&row).Error)
	assert.Contains(t, row.Payload, "Negro")
}

func TestSQLiteReplaceAll(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	_, err := s.ReplaceAll(ctx, "Documentacion", []any{
		map[string]any{"_id": "d1"},
		map[string]any{"_id": "d2"},
	})
	require.NoError(t, err)

	n, err := s.ReplaceAll(ctx, "Documentacion", []any{
		map[string]any{"_id": "d3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(1), countRows(t, s, "Documentacion"))
}

func TestSQLiteReplaceAllKeepsRowsOnEncodeFailure(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	_, err := s.ReplaceAll(ctx, "Documentacion", []any{
		map[string]any{"_id": "d1"},
	})
	require.NoError(t, err)

	// channels cannot be marshaled; the existing rows must survive the failure
	_, err = s.ReplaceAll(ctx, "Documentacion", []any{make(chan int)})
	require.Error(t, err)
	assert.Equal(t, int64(1), countRows(t, s, "Documentacion"))
}
