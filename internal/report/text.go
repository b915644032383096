package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aerocats/massprops/internal/units"
	"github.com/aerocats/massprops/pkg/core"
)

// TextOptions controls WriteText.
type TextOptions struct {
	Units units.System
	// MaxDepth limits the breakdown rows; negative means every depth.
	MaxDepth int
}

// display converts SI values to the display units.
type display struct {
	lengthFactor, forceFactor, inertiaFactor float64
}

func newDisplay(sys units.System) (display, error) {
	var d display
	var err error
	if d.lengthFactor, err = units.Factor(units.Length, sys.Length); err != nil {
		return display{}, err
	}
	if d.forceFactor, err = units.Factor(units.Force, sys.Force); err != nil {
		return display{}, err
	}
	if d.inertiaFactor, err = units.Factor(units.Inertia, sys.Inertia); err != nil {
		return display{}, err
	}
	return d, nil
}

func (d display) length(v float64) float64  { return v / d.lengthFactor }
func (d display) force(v float64) float64   { return v / d.forceFactor }
func (d display) inertia(v float64) float64 { return v / d.inertiaFactor }

// preorder reorders breadth-first rows depth-first so each row is printed
// directly under its parent. Sibling order is kept.
func preorder(rows []core.NodeSummary) []core.NodeSummary {
	children := make(map[string][]int, len(rows))
	var roots []int
	for i, n := range rows {
		if n.Depth == 0 {
			roots = append(roots, i)
			continue
		}
		parent := n.Path
		if j := strings.LastIndex(n.Path, core.PathSeparator); j >= 0 {
			parent = n.Path[:j]
		}
		children[parent] = append(children[parent], i)
	}

	out := make([]core.NodeSummary, 0, len(rows))
	seen := make([]bool, len(rows))
	var visit func(i int)
	visit = func(i int) {
		seen[i] = true
		out = append(out, rows[i])
		for _, c := range children[rows[i].Path] {
			visit(c)
		}
	}
	for _, i := range roots {
		visit(i)
	}
	// rows whose parent is missing keep their original order at the end
	for i := range rows {
		if !seen[i] {
			out = append(out, rows[i])
		}
	}
	return out
}

// WriteText writes the weight breakdown table in the chosen display units.
// Component rows are printed depth-first and indented by depth.
func WriteText(w io.Writer, r *core.Report, opts TextOptions) error {
	d, err := newDisplay(opts.Units)
	if err != nil {
		return fmt.Errorf("display units: %w", err)
	}
	lu, fu, iu := opts.Units.Length, opts.Units.Force, opts.Units.Inertia

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := func(format string, args ...any) {
		fmt.Fprintf(tw, format, args...)
	}

	p("---------- WEIGHT BREAKDOWN ----------\n")
	p("Aircraft\t: %s\n", r.Aircraft)
	p("Total Weight\t: %.4f %s\n", d.force(r.TotalWeight), fu)
	p("CG\t: (%.4f, %.4f, %.4f) %s\n", d.length(r.CG.X), d.length(r.CG.Y), d.length(r.CG.Z), lu)
	if r.Design.Section != "" {
		p("Design CG X\t: %.4f %s (%s at %.0f%%)\n", d.length(r.DesignCGX), lu, r.Design.Section, r.Design.Fraction*100)
		dir := "aft"
		if r.CGOffsetX < 0 {
			dir = "forward"
		}
		p("CG Offset X\t: %+.4f %s (%s)\n", d.length(r.CGOffsetX), lu, dir)
	}
	in := r.InertiaCG
	p("Ixx Iyy Izz\t: %.5f %.5f %.5f %s\n", d.inertia(in.Ixx), d.inertia(in.Iyy), d.inertia(in.Izz), iu)
	p("Ixy Ixz Iyz\t: %.5f %.5f %.5f %s\n", d.inertia(in.Ixy), d.inertia(in.Ixz), d.inertia(in.Iyz), iu)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "GROUP\tWEIGHT (%s)\tSHARE\t\n", fu)
	for _, s := range r.Subtotals {
		label := s.Label
		if label == "" {
			label = "(none)"
		}
		share := 0.0
		if r.TotalWeight > 0 {
			share = s.Weight / r.TotalWeight * 100
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.1f%%\t\n", label, d.force(s.Weight), share)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "COMPONENT\tGROUP\tWEIGHT (%s)\tX (%s)\tY (%s)\tZ (%s)\n", fu, lu, lu, lu)
	for _, n := range preorder(r.Nodes) {
		if opts.MaxDepth >= 0 && n.Depth > opts.MaxDepth {
			continue
		}
		name := n.Path
		if i := strings.LastIndex(n.Path, core.PathSeparator); i >= 0 {
			name = n.Path[i+len(core.PathSeparator):]
		}
		name = strings.Repeat("  ", n.Depth) + name
		if !n.HasCG {
			fmt.Fprintf(tw, "%s\t%s\t%.4f\t-\t-\t-\n", name, n.Label, d.force(n.Weight))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\t%.4f\n", name, n.Label, d.force(n.Weight),
			d.length(n.CG.X), d.length(n.CG.Y), d.length(n.CG.Z))
	}
	return tw.Flush()
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r *core.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
