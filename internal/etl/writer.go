package etl

import (
	"context"

	"go.uber.org/multierr"

	"github.com/macseguridad/flota-backend/internal/records"
	"github.com/macseguridad/flota-backend/internal/sink"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

// Writer pushes the consolidated collections into the sink. Vehicles are
// upserted by plate so re-runs are idempotent; every other collection is
// replaced wholesale — each run is the single source of truth for them, at
// the accepted cost of losing out-of-band edits made between runs.
type Writer struct {
	sink sink.Sink
	logg *logger.Logger
}

func NewWriter(s sink.Sink, logg *logger.Logger) *Writer {
	return &Writer{sink: s, logg: logg}
}

// Write attempts every collection independently: one failed collection is
// logged and recorded but never stops the rest. The combined error carries
// every per-collection failure for the caller to inspect.
func (w *Writer) Write(ctx context.Context, cols *records.Collections, sum *Summary) error {
	var combined error

	upsert := func(name string, docs []any) {
		n, err := w.sink.UpsertByKey(ctx, name, "_id", docs)
		sum.RecordCollection(name, n, err)
		if err != nil {
			w.logg.Error(w.logg.WithCollection(ctx, name), "collection upsert failed", err)
			combined = multierr.Append(combined, err)
		}
	}
	replace := func(name string, docs []any) {
		if len(docs) == 0 {
			w.logg.Info(w.logg.WithCollection(ctx, name), "no records, skipping collection")
			sum.RecordCollection(name, 0, nil)
			return
		}
		n, err := w.sink.ReplaceAll(ctx, name, docs)
		sum.RecordCollection(name, n, err)
		if err != nil {
			w.logg.Error(w.logg.WithCollection(ctx, name), "collection replace failed", err)
			combined = multierr.Append(combined, err)
		}
	}

	upsert(records.CollectionVehicles, asAny(cols.Vehicles))
	replace(records.CollectionDocumentation, asAny(cols.Documentation))
	replace(records.CollectionMaintenance, asAny(cols.Maintenance))
	replace(records.CollectionFines, asAny(cols.Fines))
	replace(records.CollectionComponents, asAny(cols.Components))
	replace(records.CollectionFleetStatus, asAny(cols.FleetStatus))

	return combined
}

func asAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
