package mass

import (
	"github.com/aerocats/massprops/internal/queue"
	"github.com/aerocats/massprops/pkg/core"
)

// Visit is one node reached by Walk.
type Visit struct {
	Path  string
	Depth int
	Node  core.Node
}

// Walk visits n and all of its descendants breadth-first, in child order.
// Returning false from fn stops the walk.
func Walk(n core.Node, fn func(Visit) bool) {
	q := queue.New[Visit]()
	n = leaf(n)
	q.Push(Visit{Path: n.NodeName(), Depth: 0, Node: n})
	for {
		v, ok := q.Pop()
		if !ok {
			return
		}
		if !fn(v) {
			return
		}
		if g, ok := v.Node.(*core.Group); ok {
			for _, c := range g.Children() {
				q.Push(Visit{
					Path:  v.Path + core.PathSeparator + c.NodeName(),
					Depth: v.Depth + 1,
					Node:  c,
				})
			}
		}
	}
}

// Summarize returns one row per node under n, breadth-first. Zero-weight
// groups are reported with HasCG false rather than failing the summary.
func (a *Aggregator) Summarize(n core.Node) ([]core.NodeSummary, error) {
	var rows []core.NodeSummary
	var walkErr error
	Walk(n, func(v Visit) bool {
		row := core.NodeSummary{
			Path:   v.Path,
			Depth:  v.Depth,
			Weight: a.TotalWeight(v.Node),
		}
		switch node := v.Node.(type) {
		case core.Element:
			row.IsLeaf = true
			row.Label = node.WeightGroup
		case *core.Group:
			row.Label = node.Label()
		}
		if row.Weight > 0 {
			cg, err := a.CenterOfGravity(v.Node)
			if err != nil {
				walkErr = err
				return false
			}
			row.CG = cg
			row.HasCG = true
		} else if row.IsLeaf {
			row.CG = v.Node.(core.Element).Position
			row.HasCG = true
		}
		rows = append(rows, row)
		return true
	})
	return rows, walkErr
}
