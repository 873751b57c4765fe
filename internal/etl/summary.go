package etl

import (
	"context"
	"time"

	"github.com/macseguridad/flota-backend/pkg/logger"
)

// Diagnostic categories used by the run summary.
const (
	CategoryDate      = "fecha"
	CategoryCurrency  = "moneda"
	CategoryPlate     = "patente"
	CategoryKilometer = "kilometraje"
	CategoryRecord    = "validacion"
)

// CollectionOutcome is the independent write result for one sink collection.
type CollectionOutcome struct {
	Written int
	Err     error
}

// Summary is the run report: per-collection counts, per-source row counts and
// the first few offending raw values per diagnostic category. It is the
// primary observability surface of a run.
type Summary struct {
	StartedAt  time.Time
	FinishedAt time.Time

	SourceRows     map[string]int
	SkippedRows    map[string]int
	MissingSources []string

	InvalidCounts  map[string]int
	InvalidSamples map[string][]string
	sampleLimit    int

	Collections map[string]CollectionOutcome
}

func NewSummary(sampleLimit int) *Summary {
	if sampleLimit <= 0 {
		sampleLimit = 5
	}
	return &Summary{
		StartedAt:      time.Now().UTC(),
		SourceRows:     make(map[string]int),
		SkippedRows:    make(map[string]int),
		InvalidCounts:  make(map[string]int),
		InvalidSamples: make(map[string][]string),
		sampleLimit:    sampleLimit,
		Collections:    make(map[string]CollectionOutcome),
	}
}

// RecordInvalid notes one discarded/defaulted raw value under a category,
// keeping at most the configured number of samples.
func (s *Summary) RecordInvalid(category, raw string) {
	s.InvalidCounts[category]++
	if len(s.InvalidSamples[category]) < s.sampleLimit {
		s.InvalidSamples[category] = append(s.InvalidSamples[category], raw)
	}
}

// RecordSource notes how many rows a source contributed and how many were
// skipped as malformed.
func (s *Summary) RecordSource(file string, kept, skipped int) {
	s.SourceRows[file] = kept
	if skipped > 0 {
		s.SkippedRows[file] = skipped
	}
}

// RecordMissing notes a source file that was absent or unreadable.
func (s *Summary) RecordMissing(file string) {
	s.MissingSources = append(s.MissingSources, file)
}

// RecordCollection captures the independent outcome of one collection write.
func (s *Summary) RecordCollection(name string, written int, err error) {
	s.Collections[name] = CollectionOutcome{Written: written, Err: err}
}

// Finish stamps the end of the run.
func (s *Summary) Finish() {
	s.FinishedAt = time.Now().UTC()
}

// Log emits the report through the structured logger.
func (s *Summary) Log(ctx context.Context, logg *logger.Logger) {
	runCtx := logg.WithFields(ctx, map[string]any{
		"duration_ms": s.FinishedAt.Sub(s.StartedAt).Milliseconds(),
	})
	logg.Info(runCtx, "etl run finished")

	for file, kept := range s.SourceRows {
		fields := map[string]any{"rows": kept}
		if skipped := s.SkippedRows[file]; skipped > 0 {
			fields["skipped_rows"] = skipped
		}
		logg.Info(logg.WithFields(logg.WithSource(ctx, file), fields), "source processed")
	}
	for _, file := range s.MissingSources {
		logg.Warn(logg.WithSource(ctx, file), "source missing or unreadable, contributed nothing")
	}

	for category, count := range s.InvalidCounts {
		catCtx := logg.WithFields(ctx, map[string]any{
			"category": category,
			"count":    count,
			"samples":  s.InvalidSamples[category],
		})
		logg.Warn(catCtx, "values coerced to defaults")
	}

	for name, outcome := range s.Collections {
		colCtx := logg.WithCollection(ctx, name)
		if outcome.Err != nil {
			logg.Error(colCtx, "collection write failed", outcome.Err)
			continue
		}
		logg.Info(logg.WithField(colCtx, "written", outcome.Written), "collection written")
	}
}
