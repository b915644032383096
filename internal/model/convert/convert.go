package convert

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aerocats/massprops/internal/geo"
	"github.com/aerocats/massprops/internal/model"
	"github.com/aerocats/massprops/pkg/core"
)

// pointToVec converts a stored point back to a vector. Empty points are the origin.
func pointToVec(p model.Point) core.Vec3 {
	v, err := geo.VecFromPoint(p.Point)
	if err != nil {
		return core.Vec3{}
	}
	return v
}

// MassRunToCore converts a GORM MassRun, with its Nodes loaded, back to a
// core.Report. Subtotals come from the JSON column, sorted by label.
func MassRunToCore(run model.MassRun) (core.Report, error) {
	r := core.Report{
		Aircraft:    run.Aircraft,
		GeneratedAt: run.CreatedAt,
		Gravity:     run.Gravity,
		TotalWeight: run.TotalWeight,
		CG:          pointToVec(run.CG),
		InertiaCG: core.Inertia{
			Ixx: run.Ixx, Iyy: run.Iyy, Izz: run.Izz,
			Ixy: run.Ixy, Ixz: run.Ixz, Iyz: run.Iyz,
		},
		DesignCGX: run.DesignCGX,
		CGOffsetX: run.CGOffsetX,
	}
	r.Design.Section = run.DesignSection
	r.Design.Fraction = run.DesignFraction

	if len(run.Subtotals) > 0 {
		var m map[string]float64
		if err := json.Unmarshal(run.Subtotals, &m); err != nil {
			return core.Report{}, fmt.Errorf("unmarshal subtotals: %w", err)
		}
		labels := make([]string, 0, len(m))
		for label := range m {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			r.Subtotals = append(r.Subtotals, core.Subtotal{Label: label, Weight: m[label]})
		}
	}

	nodes := make([]model.MassNode, len(run.Nodes))
	copy(nodes, run.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Seq < nodes[j].Seq })
	for _, n := range nodes {
		r.Nodes = append(r.Nodes, MassNodeToCore(n))
	}
	return r, nil
}

// MassNodeToCore converts one stored breakdown row.
func MassNodeToCore(n model.MassNode) core.NodeSummary {
	return core.NodeSummary{
		Path:   n.Path,
		Depth:  n.Depth,
		IsLeaf: n.IsLeaf,
		Label:  n.Label,
		Weight: n.Weight,
		CG:     pointToVec(n.CG),
		HasCG:  n.HasCG,
	}
}
