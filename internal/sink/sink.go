// Package sink is the persistence collaborator of the ETL: uniquely-keyed
// record collections supporting point lookups, idempotent per-key upserts and
// wholesale replacement. The pipeline holds an explicitly constructed Sink for
// the duration of a run; there is no lazily-initialized global handle.
package sink

import "context"

// Sink is the write surface consumed by the pipeline.
type Sink interface {
	// Ping verifies the sink is reachable. An unreachable sink is the one
	// fatal condition of a run.
	Ping(ctx context.Context) error
	// UpsertByKey inserts or merge-overwrites each document by its keyField
	// value. Idempotent and safe to re-run.
	UpsertByKey(ctx context.Context, collection, keyField string, docs []any) (int, error)
	// ReplaceAll clears the collection and bulk-inserts docs: each run is the
	// single source of truth for replaced collections.
	ReplaceAll(ctx context.Context, collection string, docs []any) (int, error)
	// Close releases the sink at the end of the run.
	Close(ctx context.Context) error
}
