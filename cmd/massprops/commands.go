package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/internal/geo"
	"github.com/aerocats/massprops/internal/mass"
	"github.com/aerocats/massprops/internal/report"
	"github.com/aerocats/massprops/internal/storage"
	"github.com/aerocats/massprops/internal/units"
	"github.com/aerocats/massprops/pkg/core"
)

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch strings.ToLower(cmd) {
	case "report":
		return a.cmdReport()
	case "json":
		return a.cmdJSON()
	case "subtotal":
		if len(args) != 1 {
			return fmt.Errorf("%w: subtotal takes one weight group label", errUsage)
		}
		return a.cmdSubtotal(args[0])
	case "cg":
		if len(args) != 1 {
			return fmt.Errorf("%w: cg takes one node path", errUsage)
		}
		return a.cmdCG(args[0])
	case "moi":
		if len(args) != 2 {
			return fmt.Errorf("%w: moi takes a point and a direction", errUsage)
		}
		return a.cmdMOI(args[0], args[1])
	case "save":
		return a.cmdSave(ctx)
	case "history":
		label := ""
		if len(args) > 0 {
			label = args[0]
		}
		return a.cmdHistory(ctx, label)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) buildReport() (*core.Report, error) {
	r, err := report.Build(a.agg, a.built.Aircraft)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Report built", "nodes", len(r.Nodes), "totalWeight", r.TotalWeight)
	return r, nil
}

func (a *app) cmdReport() error {
	r, err := a.buildReport()
	if err != nil {
		return err
	}
	return report.WriteText(a.stdout, r, report.TextOptions{
		Units:    config.GetDisplayUnits(),
		MaxDepth: a.depth,
	})
}

func (a *app) cmdJSON() error {
	r, err := a.buildReport()
	if err != nil {
		return err
	}
	return report.WriteJSON(a.stdout, r)
}

func (a *app) cmdSubtotal(label string) error {
	display := config.GetDisplayUnits()
	w := a.agg.SubtotalByGroupLabel(a.built.Aircraft.Root, label)
	fmt.Fprintf(a.stdout, "%s: %s\n", label, units.AsUnit(units.Force, w, display.Force))
	return nil
}

// findNode resolves a path below the root. A leading root name is accepted.
func (a *app) findNode(path string) (core.Node, error) {
	root := a.built.Aircraft.Root
	p := strings.Trim(path, core.PathSeparator)
	if p == "" || p == root.NodeName() {
		return root, nil
	}
	p = strings.TrimPrefix(p, root.NodeName()+core.PathSeparator)
	n, ok := root.Find(p)
	if !ok {
		return nil, fmt.Errorf("no node %q in aircraft %q", path, a.built.Aircraft.Name)
	}
	return n, nil
}

func (a *app) cmdCG(path string) error {
	n, err := a.findNode(path)
	if err != nil {
		return err
	}
	cg, err := a.agg.CenterOfGravity(n)
	if err != nil {
		return err
	}
	display := config.GetDisplayUnits()
	fmt.Fprintf(a.stdout, "%s: x=%s y=%s z=%s\n", path,
		units.AsUnit(units.Length, cg.X, display.Length),
		units.AsUnit(units.Length, cg.Y, display.Length),
		units.AsUnit(units.Length, cg.Z, display.Length))
	return nil
}

func (a *app) cmdMOI(point, direction string) error {
	display := config.GetDisplayUnits()
	conv, err := units.NewConverter(display)
	if err != nil {
		return err
	}
	p, err := geo.ParseVec3(point)
	if err != nil {
		return fmt.Errorf("%w: point %q: %v", errUsage, point, err)
	}
	d, err := geo.ParseVec3(direction)
	if err != nil {
		return fmt.Errorf("%w: direction %q: %v", errUsage, direction, err)
	}
	p = core.NewVec3(conv.Length(p.X), conv.Length(p.Y), conv.Length(p.Z))

	i, err := a.agg.MomentOfInertia(a.built.Aircraft.Root, mass.Axis{Point: p, Direction: d})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "I: %s\n", units.AsUnit(units.Inertia, i, display.Inertia))
	return nil
}

func (a *app) cmdSave(ctx context.Context) error {
	r, err := a.buildReport()
	if err != nil {
		return err
	}

	ref, err := a.saveReport(ctx, r)
	if err != nil {
		return err
	}
	a.slogManager.SetRunID(ref)
	a.metrics.Record(ctx, r.Aircraft, r.TotalWeight, r.CGOffsetX)
	a.publishReport(ctx, r)

	if ref == "" {
		ref = "(not written)"
	}
	fmt.Fprintf(a.stdout, "saved %s: %s\n", r.Aircraft, ref)
	return nil
}

func (a *app) cmdHistory(ctx context.Context, label string) error {
	backend, err := a.openStorage()
	if err != nil {
		return err
	}
	defer backend.Close()

	name := a.built.Aircraft.Name
	display := config.GetDisplayUnits()

	if label != "" {
		h, ok := backend.(subtotalHistorian)
		if !ok {
			return fmt.Errorf("storage backend %q keeps no subtotal history", config.GetStorageConfig().Type)
		}
		weights, err := h.SubtotalHistory(ctx, name, label)
		if err != nil {
			return err
		}
		for i, w := range weights {
			fmt.Fprintf(a.stdout, "%d\t%s\n", i+1, units.AsUnit(units.Force, w, display.Force))
		}
		return nil
	}

	loader, ok := backend.(storage.Loader)
	if !ok {
		return fmt.Errorf("storage backend %q cannot load reports", config.GetStorageConfig().Type)
	}
	reports, err := loader.LoadReports(ctx, name, a.limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "GENERATED\tWEIGHT\tCG X\tCG OFFSET X\n")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.GeneratedAt.UTC().Format("2006-01-02 15:04:05"),
			units.AsUnit(units.Force, r.TotalWeight, display.Force),
			units.AsUnit(units.Length, r.CG.X, display.Length),
			units.AsUnit(units.Length, r.CGOffsetX, display.Length))
	}
	return tw.Flush()
}
