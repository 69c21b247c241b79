// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vega serializes chart specs as Vega-Lite v5 documents.
//
// The document is the textual form of a chart.Spec: mark and encoding
// channels derive from the spec's kind and role bindings, and the
// result's rows are inlined under data.values so the document stands
// alone. The spec itself travels in the usermeta property, which is
// how Bindings reconstructs it without reverse-engineering channels.
package vega

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/autoviz/autoviz/chart"
	"github.com/autoviz/autoviz/tabular"
	"github.com/shopspring/decimal"
)

const schemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// shapeRange is the symbol cycle for the shape channel.
var shapeRange = []string{
	"circle", "square", "cross", "diamond", "triangle-up", "triangle-down",
	"triangle-right", "triangle-left", "arrow", "wedge", "stroke",
}

// Encode renders spec over res as a self-contained Vega-Lite v5
// document. KPI specs become a text-mark tile document over the
// formatted values. Map and None have no Vega-Lite form and return an
// error; map layers are exported as hexagon layer JSON instead.
func Encode(spec chart.Spec, res *tabular.Result) ([]byte, error) {
	switch spec.Kind {
	case chart.None:
		return nil, errors.New("no chart to encode")
	case chart.Map:
		return nil, errors.New("map charts are not Vega-Lite documents")
	case chart.KPI:
		return encodeKPI(spec, res)
	}

	for role, col := range spec.Roles {
		if res.Column(col) == nil {
			return nil, fmt.Errorf("column %q bound to %s is not in the result", col, role)
		}
	}

	doc := map[string]any{
		"$schema":  schemaURL,
		"usermeta": usermeta(spec),
		"data":     map[string]any{"values": rowValues(res, dataColumns(spec, res))},
	}
	if spec.Title != "" {
		doc["title"] = spec.Title
	}
	if spec.Kind == chart.DualAxis {
		doc["layer"] = dualAxisLayers(spec)
		doc["resolve"] = map[string]any{"scale": map[string]any{"y": "independent"}}
	} else {
		doc["mark"], doc["encoding"] = markEncoding(spec, res)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// markEncoding builds the mark and encoding properties for every
// single-view kind.
func markEncoding(spec chart.Spec, res *tabular.Result) (any, map[string]any) {
	tips := tooltipChannel(spec, res)
	switch spec.Kind {
	case chart.TimeSeries:
		return "bar", map[string]any{
			"x":       sorted(field(spec.Role(chart.RoleDate), "temporal"), "ascending"),
			"y":       field(spec.Role(chart.RoleY), "quantitative"),
			"tooltip": tips,
		}

	case chart.StackedBars, chart.MultiStackedBars:
		color := field(spec.Role(chart.RoleColor), "nominal")
		if spec.Kind == chart.MultiStackedBars {
			// The color column is user-selectable; title the legend
			// with the current choice.
			color["title"] = spec.Role(chart.RoleColor)
		}
		return "bar", map[string]any{
			"x":       sorted(field(spec.Role(chart.RoleDate), "temporal"), "ascending"),
			"y":       stacked(field(spec.Role(chart.RoleY), "quantitative")),
			"color":   color,
			"tooltip": tips,
		}

	case chart.Scatter, chart.MultiScatter:
		enc := map[string]any{
			"x":       field(spec.Role(chart.RoleX), "quantitative"),
			"y":       field(spec.Role(chart.RoleY), "quantitative"),
			"color":   field(spec.Role(chart.RoleColor), "nominal"),
			"tooltip": tips,
		}
		if spec.Kind == chart.Scatter {
			return map[string]any{"type": "circle", "size": 100}, enc
		}
		enc["shape"] = shapeField(spec.Role(chart.RoleShape))
		return map[string]any{"type": "point", "size": 100}, enc

	case chart.Bubble, chart.MultiBubble:
		enc := map[string]any{
			"x":       field(spec.Role(chart.RoleX), "quantitative"),
			"y":       field(spec.Role(chart.RoleY), "quantitative"),
			"size":    field(spec.Role(chart.RoleSize), "quantitative"),
			"color":   field(spec.Role(chart.RoleColor), "nominal"),
			"tooltip": tips,
		}
		if spec.Kind == chart.Bubble {
			return "circle", enc
		}
		enc["shape"] = shapeField(spec.Role(chart.RoleShape))
		return "point", enc

	case chart.Bars:
		color := field(spec.Role(chart.RoleColor), "nominal")
		color["title"] = spec.Role(chart.RoleColor)
		return "bar", map[string]any{
			"x":       sorted(field(spec.Role(chart.RoleX), "nominal"), "-y"),
			"y":       stacked(field(spec.Role(chart.RoleY), "quantitative")),
			"color":   color,
			"tooltip": tips,
		}
	}
	panic(fmt.Sprintf("kind %v has no mark", spec.Kind))
}

// dualAxisLayers builds two line layers over a shared temporal x with
// per-layer y axes. The caller marks the y scales independent.
func dualAxisLayers(spec chart.Spec) []any {
	date := spec.Role(chart.RoleDate)
	line := func(col, stroke string) map[string]any {
		y := field(col, "quantitative")
		y["axis"] = map[string]any{"title": col}
		return map[string]any{
			"mark": map[string]any{"type": "line", "color": stroke},
			"encoding": map[string]any{
				"x":       sorted(field(date, "temporal"), "ascending"),
				"y":       y,
				"tooltip": []any{field(date, "temporal"), field(col, "quantitative")},
			},
		}
	}
	return []any{
		line(spec.Role(chart.RoleY), "blue"),
		line(spec.Role(chart.RoleY2), "red"),
	}
}

func encodeKPI(spec chart.Spec, res *tabular.Result) ([]byte, error) {
	vals := chart.KPIValues(spec, res)
	if len(vals) == 0 {
		return nil, errors.New("no KPI values to encode")
	}
	values := make([]map[string]any, len(vals))
	for i, kv := range vals {
		values[i] = map[string]any{"label": kv.Label, "value": kv.Value}
	}
	doc := map[string]any{
		"$schema":  schemaURL,
		"usermeta": usermeta(spec),
		"data":     map[string]any{"values": values},
		"mark":     map[string]any{"type": "text", "fontSize": 32},
		"encoding": map[string]any{
			"text":   map[string]any{"field": "value", "type": "nominal"},
			"column": map[string]any{"field": "label", "type": "nominal"},
		},
	}
	if spec.Title != "" {
		doc["title"] = spec.Title
	}
	return json.MarshalIndent(doc, "", "  ")
}

func usermeta(spec chart.Spec) map[string]any {
	roles := make(map[string]string, len(spec.Roles))
	for role, col := range spec.Roles {
		roles[string(role)] = col
	}
	return map[string]any{"kind": spec.Kind.String(), "roles": roles}
}

func field(name, typ string) map[string]any {
	return map[string]any{"field": name, "type": typ}
}

func sorted(f map[string]any, order string) map[string]any {
	f["sort"] = order
	return f
}

func stacked(f map[string]any) map[string]any {
	f["stack"] = "zero"
	return f
}

func shapeField(name string) map[string]any {
	f := field(name, "nominal")
	f["scale"] = map[string]any{"range": shapeRange}
	return f
}

func tooltipChannel(spec chart.Spec, res *tabular.Result) []any {
	tips := make([]any, len(spec.Tooltip))
	for i, col := range spec.Tooltip {
		tips[i] = field(col, fieldType(res.Column(col)))
	}
	return tips
}

// fieldType infers a channel type from a column's first non-null
// value.
func fieldType(col *tabular.Column) string {
	if col == nil {
		return "nominal"
	}
	for _, v := range col.Values {
		switch v.(type) {
		case nil:
			continue
		case time.Time:
			return "temporal"
		case int64, float64, decimal.Decimal:
			return "quantitative"
		default:
			return "nominal"
		}
	}
	return "nominal"
}

// dataColumns returns the columns the document needs, in result
// order: the bound roles plus the tooltip list.
func dataColumns(spec chart.Spec, res *tabular.Result) []string {
	need := make(map[string]bool)
	for _, col := range spec.Roles {
		need[col] = true
	}
	for _, col := range spec.Tooltip {
		need[col] = true
	}
	var cols []string
	for _, name := range res.ColumnNames() {
		if need[name] {
			cols = append(cols, name)
		}
	}
	return cols
}

func rowValues(res *tabular.Result, cols []string) []map[string]any {
	rows := make([]map[string]any, res.NumRows())
	for i := range rows {
		row := make(map[string]any, len(cols))
		for _, name := range cols {
			row[name] = jsonValue(res.Column(name).Values[i])
		}
		rows[i] = row
	}
	return rows
}

// jsonValue converts a cell to something encoding/json accepts: times
// as RFC 3339, decimals as floats, non-finite floats as null.
func jsonValue(v tabular.Value) any {
	switch v := v.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case decimal.Decimal:
		return v.InexactFloat64()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	}
	return v
}

// Bindings re-extracts the kind and role bindings Encode stored in a
// document's usermeta. Feeding a document back through Bindings
// returns exactly the bindings it was encoded with.
func Bindings(doc []byte) (chart.Kind, map[chart.Role]string, error) {
	var meta struct {
		Usermeta struct {
			Kind  string            `json:"kind"`
			Roles map[string]string `json:"roles"`
		} `json:"usermeta"`
	}
	if err := json.Unmarshal(doc, &meta); err != nil {
		return chart.None, nil, err
	}
	kind, ok := chart.ParseKind(meta.Usermeta.Kind)
	if !ok || kind == chart.None {
		return chart.None, nil, fmt.Errorf("document carries no chart metadata (kind %q)", meta.Usermeta.Kind)
	}
	roles := make(map[chart.Role]string, len(meta.Usermeta.Roles))
	for role, col := range meta.Usermeta.Roles {
		roles[chart.Role(role)] = col
	}
	return kind, roles, nil
}
