// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/aerocats/massprops/internal/geo"
	"github.com/aerocats/massprops/internal/model"
	"github.com/aerocats/massprops/pkg/core"
	"gorm.io/datatypes"
)

// vecToPoint converts a body-frame vector to a model.Point
func vecToPoint(v core.Vec3) (model.Point, error) {
	p, err := geo.PointFromVec(v)
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{Point: p}, nil
}

// subtotalsToJSON converts subtotals to a label->weight JSON object.
func subtotalsToJSON(subtotals []core.Subtotal) (datatypes.JSON, error) {
	m := make(map[string]float64, len(subtotals))
	for _, s := range subtotals {
		m[s.Label] = s.Weight
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal subtotals: %w", err)
	}
	return datatypes.JSON(data), nil
}

// CoreToMassRun converts a core.Report to a GORM model.MassRun including
// its node and subtotal rows.
func CoreToMassRun(r core.Report) (model.MassRun, error) {
	subtotals, err := subtotalsToJSON(r.Subtotals)
	if err != nil {
		return model.MassRun{}, err
	}
	cg, err := vecToPoint(r.CG)
	if err != nil {
		return model.MassRun{}, fmt.Errorf("run cg: %w", err)
	}

	run := model.MassRun{
		CreatedAt:      r.GeneratedAt,
		Aircraft:       r.Aircraft,
		Gravity:        r.Gravity,
		TotalWeight:    r.TotalWeight,
		CG:             cg,
		Ixx:            r.InertiaCG.Ixx,
		Iyy:            r.InertiaCG.Iyy,
		Izz:            r.InertiaCG.Izz,
		Ixy:            r.InertiaCG.Ixy,
		Ixz:            r.InertiaCG.Ixz,
		Iyz:            r.InertiaCG.Iyz,
		DesignSection:  r.Design.Section,
		DesignFraction: r.Design.Fraction,
		DesignCGX:      r.DesignCGX,
		CGOffsetX:      r.CGOffsetX,
		Subtotals:      subtotals,
	}

	run.Nodes = make([]model.MassNode, len(r.Nodes))
	for i, n := range r.Nodes {
		node, err := CoreToMassNode(n, i)
		if err != nil {
			return model.MassRun{}, err
		}
		run.Nodes[i] = node
	}
	run.SubtotalRows = make([]model.MassSubtotal, len(r.Subtotals))
	for i, s := range r.Subtotals {
		run.SubtotalRows[i] = model.MassSubtotal{Label: s.Label, Weight: s.Weight}
	}
	return run, nil
}

// CoreToMassNode converts one breakdown row. seq keeps the walk order.
func CoreToMassNode(n core.NodeSummary, seq int) (model.MassNode, error) {
	cg, err := vecToPoint(n.CG)
	if err != nil {
		return model.MassNode{}, fmt.Errorf("node %s cg: %w", n.Path, err)
	}
	return model.MassNode{
		Seq:    seq,
		Path:   n.Path,
		Depth:  n.Depth,
		IsLeaf: n.IsLeaf,
		Label:  n.Label,
		Weight: n.Weight,
		CG:     cg,
		HasCG:  n.HasCG,
	}, nil
}
