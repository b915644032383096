// Package report assembles the derived mass properties of an aircraft into a
// core.Report and renders it.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/aerocats/massprops/internal/mass"
	"github.com/aerocats/massprops/pkg/core"
)

// Build computes the full report for ac. The aircraft must have a positive
// total weight.
func Build(agg *mass.Aggregator, ac *core.Aircraft) (*core.Report, error) {
	return BuildAt(agg, ac, time.Now().UTC())
}

// BuildAt is Build with a fixed generation time.
func BuildAt(agg *mass.Aggregator, ac *core.Aircraft, at time.Time) (*core.Report, error) {
	if ac == nil || ac.Root == nil {
		return nil, fmt.Errorf("%w: no aircraft", core.ErrContractViolation)
	}

	cg, err := agg.CenterOfGravity(ac.Root)
	if err != nil {
		return nil, fmt.Errorf("aircraft %q: %w", ac.Name, err)
	}
	nodes, err := agg.Summarize(ac.Root)
	if err != nil {
		return nil, fmt.Errorf("aircraft %q: %w", ac.Name, err)
	}

	r := &core.Report{
		Aircraft:    ac.Name,
		GeneratedAt: at,
		Gravity:     agg.Gravity(),
		TotalWeight: agg.TotalWeight(ac.Root),
		CG:          cg,
		InertiaCG:   agg.InertiaTensor(ac.Root, cg),
		Design:      ac.Reference,
		Subtotals:   SortedSubtotals(agg.Subtotals(ac.Root)),
		Nodes:       nodes,
	}
	if ac.Reference.Section != "" {
		r.DesignCGX = ac.Reference.X()
		r.CGOffsetX = cg.X - r.DesignCGX
	}
	return r, nil
}

// SortedSubtotals turns a label map into rows ordered by label.
func SortedSubtotals(m map[string]float64) []core.Subtotal {
	out := make([]core.Subtotal, 0, len(m))
	for label, w := range m {
		out = append(out, core.Subtotal{Label: label, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Subtotal returns the weight recorded for label, and whether it is present.
func Subtotal(r *core.Report, label string) (float64, bool) {
	for _, s := range r.Subtotals {
		if s.Label == label {
			return s.Weight, true
		}
	}
	return 0, false
}
