package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunMetrics records one data point per aggregation run.
type RunMetrics struct {
	runs   metric.Int64Counter
	weight metric.Float64Histogram
	cgX    metric.Float64Histogram
}

// NewRunMetrics creates the run instruments on the provider's meter.
func NewRunMetrics(p *Provider) (*RunMetrics, error) {
	m := p.Meter("github.com/aerocats/massprops")

	runs, err := m.Int64Counter("massprops.runs",
		metric.WithDescription("Completed mass property runs"))
	if err != nil {
		return nil, fmt.Errorf("runs counter: %w", err)
	}
	weight, err := m.Float64Histogram("massprops.total_weight",
		metric.WithDescription("Total aircraft weight"), metric.WithUnit("N"))
	if err != nil {
		return nil, fmt.Errorf("weight histogram: %w", err)
	}
	cgX, err := m.Float64Histogram("massprops.cg_offset_x",
		metric.WithDescription("Computed CG x minus design CG x"), metric.WithUnit("m"))
	if err != nil {
		return nil, fmt.Errorf("cg histogram: %w", err)
	}
	return &RunMetrics{runs: runs, weight: weight, cgX: cgX}, nil
}

// Record adds one run for the named aircraft.
func (r *RunMetrics) Record(ctx context.Context, aircraft string, totalWeight, cgOffsetX float64) {
	attrs := metric.WithAttributes(attribute.String("aircraft", aircraft))
	r.runs.Add(ctx, 1, attrs)
	r.weight.Record(ctx, totalWeight, attrs)
	r.cgX.Record(ctx, cgOffsetX, attrs)
}
