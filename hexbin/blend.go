// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hexbin

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/autoviz/autoviz/colormap"
	"github.com/autoviz/autoviz/tabular"
)

// MaxMetrics caps how many metric layers blend into one map.
const MaxMetrics = 3

// DefaultHeightMultiplier is the elevation scale applied by renderers
// on top of cell elevations.
const DefaultHeightMultiplier = 100

// A CombinedCell is one hexagon of the blended map: color averaged
// across the metrics present at the cell, elevation from the height
// metric, and a tooltip line per present metric.
type CombinedCell struct {
	ID        string
	Lat, Lon  float64
	Color     colormap.RGBA
	Elevation float64
	Tooltip   string
	Count     int
}

// A Viewport is the initial camera for a rendered map.
type Viewport struct {
	Lat, Lon    float64
	Zoom, Pitch int
}

// A MapLayer is the blended, render-ready hexagon layer. Extruded is
// set iff a height metric was designated; ElevationScale is the
// multiplier renderers apply to cell elevations (0 when flat).
type MapLayer struct {
	Cells          []CombinedCell
	Extruded       bool
	HeightMetric   string
	ElevationScale float64
	Viewport       Viewport
}

// Blend merges up to MaxMetrics independently aggregated layers into
// one cell set over the union of their cell IDs. Per cell, the
// color's R, G, and B channels are the integer mean across the
// layers present there and alpha is their max. The tooltip joins
// "<metric>: <display>" lines in layer order, and the count and
// position come from the first layer present.
//
// Elevation comes from the heightMetric layer's value at the cell:
// rescaled to [0, 100] over that layer's full value range when
// normalize is set (a degenerate range keeps the raw value), raw
// otherwise. Cells the height layer lacks, or every cell when no
// height metric is designated, sit at elevation 0. multiplier
// becomes the map's ElevationScale when extruded.
//
// The viewport centers on the mean input coordinate, combining layer
// centers weighted by point count, at zoom 6 with pitch 30 iff
// extruded.
func Blend(layers []*Layer, heightMetric string, multiplier float64, normalize bool) *MapLayer {
	m := &MapLayer{HeightMetric: heightMetric}

	var height *Layer
	if heightMetric != "" {
		for _, l := range layers {
			if l.Metric == heightMetric {
				height = l
				break
			}
		}
	}
	m.Extruded = height != nil
	if m.Extruded {
		m.ElevationScale = multiplier
	}
	var hmin, hmax float64
	if height != nil && len(height.Cells) > 0 {
		vs := make([]float64, len(height.Cells))
		for i := range height.Cells {
			vs[i] = height.Cells[i].Value
		}
		hmin, hmax = stats.Bounds(vs)
	}

	byID := make([]map[string]*Cell, len(layers))
	var ids []string
	seen := make(map[string]bool)
	for i, l := range layers {
		byID[i] = make(map[string]*Cell, len(l.Cells))
		for j := range l.Cells {
			c := &l.Cells[j]
			if !seen[c.ID] {
				seen[c.ID] = true
				ids = append(ids, c.ID)
			}
			byID[i][c.ID] = c
		}
	}
	sort.Strings(ids)

	m.Cells = make([]CombinedCell, 0, len(ids))
	for _, id := range ids {
		cc := CombinedCell{ID: id}
		var rsum, gsum, bsum, n int
		var amax uint8
		var parts []string
		for i, l := range layers {
			c := byID[i][id]
			if c == nil {
				continue
			}
			if n == 0 {
				cc.Lat, cc.Lon = c.Lat, c.Lon
				cc.Count = c.Count
			}
			rsum += int(c.Color[0])
			gsum += int(c.Color[1])
			bsum += int(c.Color[2])
			if c.Color[3] > amax {
				amax = c.Color[3]
			}
			n++
			parts = append(parts, l.Metric+": "+c.Display)
			if l == height {
				if normalize && hmax > hmin {
					cc.Elevation = (c.Value - hmin) / (hmax - hmin) * 100
				} else {
					cc.Elevation = c.Value
				}
			}
		}
		if n > 0 {
			cc.Color = colormap.RGBA{uint8(rsum / n), uint8(gsum / n), uint8(bsum / n), amax}
		}
		cc.Tooltip = strings.Join(parts, "\n")
		m.Cells = append(m.Cells, cc)
	}

	var wlat, wlon float64
	w := 0
	for _, l := range layers {
		if n := l.points(); n > 0 {
			wlat += l.CenterLat * float64(n)
			wlon += l.CenterLon * float64(n)
			w += n
		}
	}
	m.Viewport = Viewport{Zoom: 6}
	if w > 0 {
		m.Viewport.Lat = wlat / float64(w)
		m.Viewport.Lon = wlon / float64(w)
	}
	if m.Extruded {
		m.Viewport.Pitch = 30
	}
	return m
}

// A MetricSelection names one metric column and its config.
type MetricSelection struct {
	Column string
	Config MetricConfig
}

// MapOptions adjusts blending. The zero value normalizes heights to
// [0, 100] and uses DefaultHeightMultiplier.
type MapOptions struct {
	// HeightMultiplier overrides the map's elevation scale.
	HeightMultiplier float64
	// RawHeights skips [0, 100] normalization and keeps raw
	// aggregated values as elevations.
	RawHeights bool
}

// BuildMap runs the whole pipeline for up to MaxMetrics metrics:
// extract, aggregate, and blend. Metrics fail independently: one
// whose column yields no usable points contributes an empty layer
// and a logged warning while the rest still render. The height
// metric is the first selection whose config sets Height.
//
// BuildMap errors only when no map can exist at all: bad arguments,
// or no row with an in-range coordinate pair to center the viewport
// on.
func BuildMap(res *tabular.Result, latCol, lonCol string, sels []MetricSelection, opt MapOptions, log *slog.Logger) (*MapLayer, error) {
	if log == nil {
		log = slog.Default()
	}
	if len(sels) == 0 {
		return nil, fmt.Errorf("no metrics selected")
	}
	if len(sels) > MaxMetrics {
		return nil, fmt.Errorf("%d metrics selected; maps blend at most %d", len(sels), MaxMetrics)
	}
	if res.Column(latCol) == nil {
		return nil, fmt.Errorf("unknown latitude column %q", latCol)
	}
	if res.Column(lonCol) == nil {
		return nil, fmt.Errorf("unknown longitude column %q", lonCol)
	}
	if len(Extract(res, latCol, lonCol, "")) == 0 {
		return nil, fmt.Errorf("no row has usable coordinates in %q, %q", latCol, lonCol)
	}

	heightMetric := ""
	layers := make([]*Layer, 0, len(sels))
	for _, sel := range sels {
		cfg := sel.Config
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("metric %s: %v", sel.Column, err)
		}
		if res.Column(sel.Column) == nil {
			return nil, fmt.Errorf("unknown metric column %q", sel.Column)
		}
		if cfg.Height && heightMetric == "" {
			heightMetric = sel.Column
		}
		l := Aggregate(sel.Column, Extract(res, latCol, lonCol, sel.Column), cfg, log)
		if len(l.Cells) == 0 {
			log.Warn("metric aggregated no cells", "metric", sel.Column, "reason", l.Diagnostic)
		}
		layers = append(layers, l)
	}

	multiplier := opt.HeightMultiplier
	if multiplier == 0 {
		multiplier = DefaultHeightMultiplier
	}
	return Blend(layers, heightMetric, multiplier, !opt.RawHeights), nil
}
