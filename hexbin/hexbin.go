// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hexbin aggregates geographic points into hexagonal cells.
//
// Points are binned on the H3 grid at a configurable resolution and
// each occupied cell carries the mean of its members' metric values,
// a member count, and a color from the metric's colormap scale. Up
// to three independently aggregated metric layers blend into one
// combined map layer with averaged colors and normalized elevations.
package hexbin

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/autoviz/autoviz/colormap"
	"github.com/autoviz/autoviz/tabular"
	h3 "github.com/uber/h3-go/v4"
)

// H3 resolutions outside this band are either too coarse to show
// structure or too fine to aggregate anything.
const (
	MinResolution = 4
	MaxResolution = 11
)

// A Point is one geographic observation of a metric.
type Point struct {
	Lat, Lon float64
	Value    float64
}

// Extract pulls points for one metric out of a result. Rows whose
// latitude, longitude, or value does not coerce to a number are
// dropped, as are rows with latitude outside [-90, 90] or longitude
// outside [-180, 180]. An empty valueCol counts rows instead of
// reading a metric: every point gets value 1.
func Extract(res *tabular.Result, latCol, lonCol, valueCol string) []Point {
	lat, lon := res.Column(latCol), res.Column(lonCol)
	if lat == nil || lon == nil {
		return nil
	}
	var value *tabular.Column
	if valueCol != "" {
		if value = res.Column(valueCol); value == nil {
			return nil
		}
	}

	var points []Point
	for i := 0; i < res.NumRows(); i++ {
		la, ok := tabular.Float(lat.Values[i])
		if !ok || !inRange(la, -90, 90) {
			continue
		}
		lo, ok := tabular.Float(lon.Values[i])
		if !ok || !inRange(lo, -180, 180) {
			continue
		}
		v := 1.0
		if value != nil {
			// Coercion failures and NaN drop the row. Infinities
			// pass through; the colormap maps them transparent.
			if v, ok = tabular.Float(value.Values[i]); !ok || v != v {
				continue
			}
		}
		points = append(points, Point{la, lo, v})
	}
	return points
}

// inRange rejects NaN as well as out-of-band values.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// A Cell is one occupied hexagonal bin.
type Cell struct {
	ID       string // H3 cell index in hex form
	Lat, Lon float64
	Value    float64 // mean of member point values
	Count    int
	Color    colormap.RGBA
	Display  string
}

// A Layer holds one metric's aggregated cells. CenterLat and
// CenterLon give the mean coordinate of the points that aggregated,
// weighted across layers by point count when blending a viewport.
// If no cells could be built, Cells is empty and Diagnostic says why.
type Layer struct {
	Metric     string
	Resolution int
	Cells      []Cell

	CenterLat, CenterLon float64

	Diagnostic string
}

func (l *Layer) points() int {
	n := 0
	for i := range l.Cells {
		n += l.Cells[i].Count
	}
	return n
}

// Aggregate bins points for one metric into H3 cells. The cell's
// value is the arithmetic mean of its members, and its lat/lon is
// the mean member coordinate (for display; not the hexagon
// centroid). Cell colors come from a colormap scale over the
// aggregated values. The configured resolution is clamped to
// [MinResolution, MaxResolution], with zero meaning the default.
//
// Aggregate never fails: an unusable input yields a layer with no
// cells and a diagnostic.
func Aggregate(metric string, points []Point, cfg MetricConfig, log *slog.Logger) *Layer {
	if log == nil {
		log = slog.Default()
	}
	res := cfg.Resolution
	if res == 0 {
		res = DefaultResolution
	}
	if res < MinResolution {
		res = MinResolution
	} else if res > MaxResolution {
		res = MaxResolution
	}
	l := &Layer{Metric: metric, Resolution: res}
	if len(points) == 0 {
		l.Diagnostic = "no rows with usable coordinates and values"
		return l
	}

	type bin struct {
		sum, lat, lon float64
		n             int
	}
	bins := make(map[string]*bin)
	var sumLat, sumLon float64
	kept, dropped := 0, 0
	for _, p := range points {
		cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lon), res)
		if err != nil {
			dropped++
			continue
		}
		id := cell.String()
		b := bins[id]
		if b == nil {
			b = new(bin)
			bins[id] = b
		}
		b.sum += p.Value
		b.lat += p.Lat
		b.lon += p.Lon
		b.n++
		sumLat += p.Lat
		sumLon += p.Lon
		kept++
	}
	if dropped > 0 {
		log.Warn("dropped points that failed hexagon assignment",
			"metric", metric, "dropped", dropped, "kept", kept)
	}
	if kept == 0 {
		l.Diagnostic = "no point mapped to a hexagon"
		return l
	}
	l.CenterLat = sumLat / float64(kept)
	l.CenterLon = sumLon / float64(kept)

	ids := make([]string, 0, len(bins))
	for id := range bins {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	values := make([]float64, len(ids))
	for i, id := range ids {
		values[i] = bins[id].sum / float64(bins[id].n)
	}

	ramp, _ := colormap.Lookup(cfg.Scheme)
	if cfg.Reversed {
		ramp = ramp.Reversed()
	}
	opacity := cfg.Opacity
	if opacity == 0 {
		opacity = DefaultOpacity
	}
	scale := colormap.NewScale(values, ramp, opacity)

	l.Cells = make([]Cell, len(ids))
	for i, id := range ids {
		b := bins[id]
		v := values[i]
		l.Cells[i] = Cell{
			ID:      id,
			Lat:     b.lat / float64(b.n),
			Lon:     b.lon / float64(b.n),
			Value:   v,
			Count:   b.n,
			Color:   scale.Map(v),
			Display: strconv.FormatFloat(v, 'f', 2, 64),
		}
	}
	return l
}
