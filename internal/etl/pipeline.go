// Package etl normalizes the fleet's heterogeneous spreadsheet exports into a
// canonical record set and loads it into the document sink. The pipeline is a
// synchronous batch: stages hand immutable frames to each other, individual
// missing or malformed sources degrade gracefully, and only an unreachable
// sink aborts the run.
package etl

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/macseguridad/flota-backend/internal/records"
	"github.com/macseguridad/flota-backend/internal/sink"
	"github.com/macseguridad/flota-backend/pkg/config"
	"github.com/macseguridad/flota-backend/pkg/doctree"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

// Pipeline wires the stages together around an explicitly injected sink and
// document tree; both are owned by the caller and live for the whole run.
type Pipeline struct {
	cfg     config.ETLConfig
	logg    *logger.Logger
	sink    sink.Sink
	reader  *Reader
	cons    *Consolidator
	prober  *Prober
	writer  *Writer
	sources []Source
}

func New(cfg config.ETLConfig, logg *logger.Logger, tree doctree.Tree, s sink.Sink) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		logg:    logg,
		sink:    s,
		reader:  NewReader(logg),
		cons:    NewConsolidator(logg),
		prober:  NewProber(tree, filepath.Base(cfg.DocsRoot), logg),
		writer:  NewWriter(s, logg),
		sources: DefaultSources(),
	}
}

// Run executes one full ETL pass and returns the run summary. The returned
// error is non-nil only for fatal conditions; per-row, per-file and
// per-collection failures are coerced, logged and reported in the summary.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	ctx = p.logg.WithRunID(ctx, uuid.NewString())
	sum := NewSummary(p.cfg.InvalidSampleLimit)
	p.logg.Info(ctx, "etl run starting")

	if err := p.sink.Ping(ctx); err != nil {
		return sum, err
	}

	cols := p.buildCollections(ctx, sum)
	p.probeDigitalDocuments(ctx, cols)
	EnsureIDs(cols)

	err := p.writer.Write(ctx, cols, sum)
	sum.Finish()
	sum.Log(ctx, p.logg)
	return sum, err
}

func (p *Pipeline) buildCollections(ctx context.Context, sum *Summary) *records.Collections {
	cols := &records.Collections{}

	for _, src := range p.sources {
		frame := p.reader.Read(ctx, filepath.Join(p.cfg.CSVDir, src.File), sum)
		if frame.Empty() {
			continue
		}
		srcCtx := p.logg.WithSource(ctx, src.File)

		switch src.Kind {
		case KindMaster:
			vehicles, docs := p.cons.BuildVehicles(srcCtx, frame, sum)
			cols.Vehicles = append(cols.Vehicles, vehicles...)
			cols.Documentation = append(cols.Documentation, docs...)
		case KindPolicies:
			cols.Documentation = append(cols.Documentation, p.cons.AppendPolicies(frame, src, sum)...)
		case KindDeregistration:
			cols.FleetStatus = append(cols.FleetStatus, p.cons.ApplyDeregistrations(frame, src, cols.Vehicles, sum)...)
		case KindMaintenance, KindMileage:
			cols.Maintenance = append(cols.Maintenance, p.cons.BuildMaintenance(frame, src, sum)...)
		case KindFines:
			cols.Fines = append(cols.Fines, p.cons.BuildFines(frame, src, sum)...)
		case KindComponents:
			cols.Components = append(cols.Components, p.cons.BuildComponents(frame, sum)...)
		}
	}
	return cols
}

func (p *Pipeline) probeDigitalDocuments(ctx context.Context, cols *records.Collections) {
	for i := range cols.Vehicles {
		cols.Vehicles[i].DigitalDocuments = p.prober.Probe(ctx, cols.Vehicles[i].Plate)
	}
}
