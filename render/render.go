// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws chart specs with the go-gg plotting stack.
//
// One renderer interprets every plottable Kind. Time series and dual
// axis charts draw as lines, the scatter family as points, and the
// bar family as per-category aggregates drawn as points (gg's mark
// set has no bar; the Vega-Lite export carries exact bar semantics).
// KPI and Map kinds have their own output surfaces and are rejected
// here.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/autoviz/autoviz/chart"
	"github.com/autoviz/autoviz/tabular"
)

// Plot builds the gg plot for spec over res.
func Plot(spec chart.Spec, res *tabular.Result) (*gg.Plot, error) {
	switch spec.Kind {
	case chart.None:
		return nil, errors.New("no chart to render")
	case chart.KPI, chart.Map:
		return nil, fmt.Errorf("%s charts do not render as plots", spec.Kind)
	}

	tab, err := plotTable(spec, res)
	if err != nil {
		return nil, err
	}
	plot := gg.NewPlot(tab)

	switch spec.Kind {
	case chart.TimeSeries:
		date, y := spec.Role(chart.RoleDate), spec.Role(chart.RoleY)
		plot.SortBy(date)
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.Add(gg.LayerLines{X: date, Y: y})
		addTooltips(plot, spec, date, y)

	case chart.DualAxis:
		// Unpivot the two metrics into long form and give each its
		// own panel with an independent y scale.
		date := spec.Role(chart.RoleDate)
		y1, y2 := spec.Role(chart.RoleY), spec.Role(chart.RoleY2)
		plot.SetData(table.Unpivot(plot.Data(), "metric", "value", y1, y2))
		plot.SortBy(date)
		plot.Add(gg.FacetX{Col: "metric", SplitYScales: true})
		plot.Add(gg.LayerLines{X: date, Y: "value", Color: "metric"})

	case chart.StackedBars, chart.MultiStackedBars:
		date, y := spec.Role(chart.RoleDate), spec.Role(chart.RoleY)
		color := spec.Role(chart.RoleColor)
		plot.SortBy(date)
		plot.Stat(sumBy{x: date, y: y, extra: []string{color}})
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.Add(gg.LayerPoints{X: date, Y: y, Color: color})
		addTooltips(plot, spec, date, y)

	case chart.Scatter, chart.MultiScatter, chart.Bubble, chart.MultiBubble:
		x, y := spec.Role(chart.RoleX), spec.Role(chart.RoleY)
		plot.Add(gg.LayerPoints{
			X:     x,
			Y:     y,
			Color: spec.Role(chart.RoleColor),
			Size:  spec.Role(chart.RoleSize),
		})
		addTooltips(plot, spec, x, y)

	case chart.Bars:
		x, y := spec.Role(chart.RoleX), spec.Role(chart.RoleY)
		color := spec.Role(chart.RoleColor)
		var extra []string
		if color != x {
			extra = append(extra, color)
		}
		plot.SortBy(x)
		plot.Stat(sumBy{x: x, y: y, extra: extra})
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.Add(gg.LayerPoints{X: x, Y: y, Color: color})
		addTooltips(plot, spec, x, y)
	}

	if spec.Title != "" {
		plot.Add(gg.Title(spec.Title))
	}
	return plot, nil
}

// WriteSVG renders spec over res to w as a width x height SVG.
func WriteSVG(w io.Writer, spec chart.Spec, res *tabular.Result, width, height int) error {
	plot, err := Plot(spec, res)
	if err != nil {
		return err
	}
	return plot.WriteSVG(w, width, height)
}

func addTooltips(plot *gg.Plot, spec chart.Spec, x, y string) {
	if len(spec.Tooltip) == 0 {
		return
	}
	plot.Stat(tipText{cols: spec.Tooltip})
	plot.Add(gg.LayerTooltips{X: x, Y: y, Label: "tooltip"})
}
