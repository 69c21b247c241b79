// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vega

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/autoviz/autoviz/chart"
	"github.com/autoviz/autoviz/classify"
	"github.com/autoviz/autoviz/tabular"
	"github.com/shopspring/decimal"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func pick(t *testing.T, res *tabular.Result, want chart.Kind) chart.Spec {
	t.Helper()
	spec := chart.Select(classify.Columns(res), res.NumRows())
	if spec.Kind != want {
		t.Fatalf("selected %s, want %s", spec.Kind, want)
	}
	return spec
}

type channel struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Sort  string `json:"sort"`
	Stack string `json:"stack"`
	Title string `json:"title"`
	Axis  struct {
		Title string `json:"title"`
	} `json:"axis"`
	Scale struct {
		Range []string `json:"range"`
	} `json:"scale"`
}

type document struct {
	Schema string          `json:"$schema"`
	Title  string          `json:"title"`
	Mark   json.RawMessage `json:"mark"`
	Data   struct {
		Values []map[string]any `json:"values"`
	} `json:"data"`
	Encoding struct {
		X       channel   `json:"x"`
		Y       channel   `json:"y"`
		Color   channel   `json:"color"`
		Size    channel   `json:"size"`
		Shape   channel   `json:"shape"`
		Text    channel   `json:"text"`
		Column  channel   `json:"column"`
		Tooltip []channel `json:"tooltip"`
	} `json:"encoding"`
	Layer []struct {
		Mark struct {
			Type  string `json:"type"`
			Color string `json:"color"`
		} `json:"mark"`
		Encoding struct {
			X       channel   `json:"x"`
			Y       channel   `json:"y"`
			Tooltip []channel `json:"tooltip"`
		} `json:"encoding"`
	} `json:"layer"`
	Resolve struct {
		Scale struct {
			Y string `json:"y"`
		} `json:"scale"`
	} `json:"resolve"`
	Usermeta struct {
		Kind  string            `json:"kind"`
		Roles map[string]string `json:"roles"`
	} `json:"usermeta"`
}

func decode(t *testing.T, doc []byte) *document {
	t.Helper()
	var d document
	if err := json.Unmarshal(doc, &d); err != nil {
		t.Fatalf("not valid JSON: %v\n%s", err, doc)
	}
	return &d
}

func TestEncodeTimeSeries(t *testing.T) {
	res := new(tabular.Builder).
		Add("when", []time.Time{day(1), day(2), day(3)}).
		Add("sales", []int64{5, 12, 9}).
		Done()
	spec := pick(t, res, chart.TimeSeries)

	doc, err := Encode(spec, res)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := decode(t, doc)

	if d.Schema != schemaURL {
		t.Errorf("$schema = %q", d.Schema)
	}
	if d.Title != "sales over when" {
		t.Errorf("title = %q", d.Title)
	}
	var mark string
	if err := json.Unmarshal(d.Mark, &mark); err != nil || mark != "bar" {
		t.Errorf("mark = %s, want \"bar\"", d.Mark)
	}
	x, y := d.Encoding.X, d.Encoding.Y
	if x.Field != "when" || x.Type != "temporal" || x.Sort != "ascending" {
		t.Errorf("x = %+v", x)
	}
	if y.Field != "sales" || y.Type != "quantitative" {
		t.Errorf("y = %+v", y)
	}
	if n := len(d.Encoding.Tooltip); n != 2 {
		t.Fatalf("len(tooltip) = %d", n)
	}
	if tip := d.Encoding.Tooltip[0]; tip.Field != "when" || tip.Type != "temporal" {
		t.Errorf("tooltip[0] = %+v", tip)
	}
	if tip := d.Encoding.Tooltip[1]; tip.Field != "sales" || tip.Type != "quantitative" {
		t.Errorf("tooltip[1] = %+v", tip)
	}

	want := []map[string]any{
		{"when": "2024-01-01T00:00:00Z", "sales": 5.0},
		{"when": "2024-01-02T00:00:00Z", "sales": 12.0},
		{"when": "2024-01-03T00:00:00Z", "sales": 9.0},
	}
	if !reflect.DeepEqual(d.Data.Values, want) {
		t.Errorf("data.values = %v, want %v", d.Data.Values, want)
	}
	if d.Usermeta.Kind != "TimeSeries" {
		t.Errorf("usermeta.kind = %q", d.Usermeta.Kind)
	}
}

func TestEncodeDualAxis(t *testing.T) {
	res := new(tabular.Builder).
		Add("when", []time.Time{day(1), day(2)}).
		Add("sales", []float64{5, 12}).
		Add("orders", []float64{100, 80}).
		Done()
	spec := pick(t, res, chart.DualAxis)

	doc, err := Encode(spec, res)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := decode(t, doc)

	if len(d.Layer) != 2 {
		t.Fatalf("len(layer) = %d, want 2", len(d.Layer))
	}
	if m := d.Layer[0].Mark; m.Type != "line" || m.Color != "blue" {
		t.Errorf("layer[0].mark = %+v", m)
	}
	if m := d.Layer[1].Mark; m.Type != "line" || m.Color != "red" {
		t.Errorf("layer[1].mark = %+v", m)
	}
	y0, y1 := d.Layer[0].Encoding.Y, d.Layer[1].Encoding.Y
	if y0.Field != "sales" || y0.Axis.Title != "sales" {
		t.Errorf("layer[0].y = %+v", y0)
	}
	if y1.Field != "orders" || y1.Axis.Title != "orders" {
		t.Errorf("layer[1].y = %+v", y1)
	}
	for i, l := range d.Layer {
		if x := l.Encoding.X; x.Field != "when" || x.Sort != "ascending" {
			t.Errorf("layer[%d].x = %+v", i, x)
		}
	}
	if d.Resolve.Scale.Y != "independent" {
		t.Errorf("resolve.scale.y = %q", d.Resolve.Scale.Y)
	}
}

func TestEncodeStackedBars(t *testing.T) {
	res := new(tabular.Builder).
		Add("when", []time.Time{day(1), day(1), day(2)}).
		Add("region", []string{"east", "west", "east"}).
		Add("market", []string{"b2b", "b2c", "b2b"}).
		Add("sales", []float64{5, 12, 9}).
		Done()
	spec := pick(t, res, chart.MultiStackedBars)

	doc, err := Encode(spec, res)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := decode(t, doc)

	var mark string
	if err := json.Unmarshal(d.Mark, &mark); err != nil || mark != "bar" {
		t.Errorf("mark = %s, want \"bar\"", d.Mark)
	}
	if y := d.Encoding.Y; y.Field != "sales" || y.Stack != "zero" {
		t.Errorf("y = %+v", y)
	}
	if c := d.Encoding.Color; c.Field != "region" || c.Type != "nominal" || c.Title != "region" {
		t.Errorf("color = %+v", c)
	}
}

func TestEncodeBars(t *testing.T) {
	res := new(tabular.Builder).
		Add("region", []string{"east", "west", "east"}).
		Add("sales", []float64{5, 12, 9}).
		Done()
	spec := pick(t, res, chart.Bars)

	doc, err := Encode(spec, res)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := decode(t, doc)

	if x := d.Encoding.X; x.Field != "region" || x.Type != "nominal" || x.Sort != "-y" {
		t.Errorf("x = %+v", x)
	}
	if y := d.Encoding.Y; y.Field != "sales" || y.Stack != "zero" {
		t.Errorf("y = %+v", y)
	}
	if c := d.Encoding.Color; c.Field != "region" || c.Title != "region" {
		t.Errorf("color = %+v", c)
	}
}

func TestEncodePointMarks(t *testing.T) {
	cats := map[string][]string{
		"region": {"east", "west", "east"},
		"market": {"b2b", "b2c", "b2b"},
	}
	nums := map[string][]float64{
		"price": {1, 2, 3},
		"qty":   {9, 8, 7},
		"score": {0.1, 0.5, 0.9},
	}
	for _, test := range []struct {
		kind       chart.Kind
		cats, nums []string
		markType   string
		markSize   float64
		size       string
		shape      string
	}{
		{chart.Scatter, []string{"region"}, []string{"price", "qty"}, "circle", 100, "", ""},
		{chart.MultiScatter, []string{"region", "market"}, []string{"price", "qty"}, "point", 100, "", "market"},
		{chart.Bubble, []string{"region"}, []string{"price", "qty", "score"}, "circle", 0, "score", ""},
		{chart.MultiBubble, []string{"region", "market"}, []string{"price", "qty", "score"}, "point", 0, "score", "market"},
	} {
		b := new(tabular.Builder)
		for _, c := range test.cats {
			b.Add(c, cats[c])
		}
		for _, n := range test.nums {
			b.Add(n, nums[n])
		}
		res := b.Done()
		spec := pick(t, res, test.kind)

		doc, err := Encode(spec, res)
		if err != nil {
			t.Fatalf("%s: Encode: %v", test.kind, err)
		}
		d := decode(t, doc)

		if test.markSize != 0 {
			var mark struct {
				Type string  `json:"type"`
				Size float64 `json:"size"`
			}
			if err := json.Unmarshal(d.Mark, &mark); err != nil || mark.Type != test.markType || mark.Size != test.markSize {
				t.Errorf("%s: mark = %s, want {%s %v}", test.kind, d.Mark, test.markType, test.markSize)
			}
		} else {
			var mark string
			if err := json.Unmarshal(d.Mark, &mark); err != nil || mark != test.markType {
				t.Errorf("%s: mark = %s, want %q", test.kind, d.Mark, test.markType)
			}
		}
		if got := d.Encoding.Size.Field; got != test.size {
			t.Errorf("%s: size.field = %q, want %q", test.kind, got, test.size)
		}
		if got := d.Encoding.Shape.Field; got != test.shape {
			t.Errorf("%s: shape.field = %q, want %q", test.kind, got, test.shape)
		}
		if test.shape != "" {
			if r := d.Encoding.Shape.Scale.Range; len(r) != 11 || r[0] != "circle" || r[10] != "stroke" {
				t.Errorf("%s: shape.scale.range = %v", test.kind, r)
			}
		}
	}
}

func TestEncodeKPI(t *testing.T) {
	res := new(tabular.Builder).
		Add("total", []float64{1200000}).
		Add("avg", []float64{45}).
		Done()
	spec := pick(t, res, chart.KPI)

	doc, err := Encode(spec, res)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := decode(t, doc)

	var mark struct {
		Type     string  `json:"type"`
		FontSize float64 `json:"fontSize"`
	}
	if err := json.Unmarshal(d.Mark, &mark); err != nil || mark.Type != "text" {
		t.Errorf("mark = %s, want text", d.Mark)
	}
	want := []map[string]any{
		{"label": "total", "value": "1.2M"},
		{"label": "avg", "value": "45.0"},
	}
	if !reflect.DeepEqual(d.Data.Values, want) {
		t.Errorf("data.values = %v, want %v", d.Data.Values, want)
	}
	if d.Encoding.Text.Field != "value" || d.Encoding.Column.Field != "label" {
		t.Errorf("encoding = %+v", d.Encoding)
	}
}

func TestEncodeDataValues(t *testing.T) {
	spec := chart.Spec{
		Kind: chart.Scatter,
		Roles: map[chart.Role]string{
			chart.RoleX:     "price",
			chart.RoleY:     "qty",
			chart.RoleColor: "region",
		},
		Tooltip: []string{"region", "price", "qty"},
	}
	res := new(tabular.Builder).
		Add("region", []tabular.Value{"east", nil, "west"}).
		Add("price", []tabular.Value{decimal.NewFromFloat(12.5), math.NaN(), 3.0}).
		Add("qty", []int64{1, 2, 3}).
		Add("junk", []string{"a", "b", "c"}).
		Done()

	doc, err := Encode(spec, res)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := decode(t, doc)

	want := []map[string]any{
		{"region": "east", "price": 12.5, "qty": 1.0},
		{"region": nil, "price": nil, "qty": 2.0},
		{"region": "west", "price": 3.0, "qty": 3.0},
	}
	if !reflect.DeepEqual(d.Data.Values, want) {
		t.Errorf("data.values = %v, want %v", d.Data.Values, want)
	}
}

func TestEncodeErrors(t *testing.T) {
	res := new(tabular.Builder).
		Add("region", []string{"east"}).
		Add("sales", []float64{5}).
		Done()

	if _, err := Encode(chart.Spec{Kind: chart.None}, res); err == nil {
		t.Errorf("None: no error")
	}
	if _, err := Encode(chart.Spec{Kind: chart.Map}, res); err == nil {
		t.Errorf("Map: no error")
	}
	spec := chart.Spec{
		Kind:  chart.TimeSeries,
		Roles: map[chart.Role]string{chart.RoleDate: "nope", chart.RoleY: "sales"},
	}
	if _, err := Encode(spec, res); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("missing column: err = %v", err)
	}
}

func TestBindingsRoundTrip(t *testing.T) {
	times := []time.Time{day(1), day(2), day(3)}
	for _, test := range []struct {
		name string
		res  *tabular.Result
		kind chart.Kind
	}{
		{"time series", new(tabular.Builder).
			Add("when", times).
			Add("sales", []float64{1, 2, 3}).
			Done(), chart.TimeSeries},
		{"dual axis", new(tabular.Builder).
			Add("when", times).
			Add("sales", []float64{1, 2, 3}).
			Add("orders", []float64{4, 5, 6}).
			Done(), chart.DualAxis},
		{"stacked bars", new(tabular.Builder).
			Add("when", times).
			Add("region", []string{"a", "b", "a"}).
			Add("sales", []float64{1, 2, 3}).
			Done(), chart.StackedBars},
		{"multi stacked bars", new(tabular.Builder).
			Add("when", times).
			Add("region", []string{"a", "b", "a"}).
			Add("market", []string{"x", "y", "x"}).
			Add("sales", []float64{1, 2, 3}).
			Done(), chart.MultiStackedBars},
		{"scatter", new(tabular.Builder).
			Add("region", []string{"a", "b", "a"}).
			Add("price", []float64{1, 2, 3}).
			Add("qty", []float64{4, 5, 6}).
			Done(), chart.Scatter},
		{"bubble", new(tabular.Builder).
			Add("region", []string{"a", "b", "a"}).
			Add("price", []float64{1, 2, 3}).
			Add("qty", []float64{4, 5, 6}).
			Add("score", []float64{7, 8, 9}).
			Done(), chart.Bubble},
		{"bars", new(tabular.Builder).
			Add("region", []string{"a", "b", "a"}).
			Add("sales", []float64{1, 2, 3}).
			Done(), chart.Bars},
		{"kpi", new(tabular.Builder).
			Add("total", []float64{1200000}).
			Done(), chart.KPI},
	} {
		spec := pick(t, test.res, test.kind)
		doc, err := Encode(spec, test.res)
		if err != nil {
			t.Fatalf("%s: Encode: %v", test.name, err)
		}
		kind, roles, err := Bindings(doc)
		if err != nil {
			t.Fatalf("%s: Bindings: %v", test.name, err)
		}
		if kind != spec.Kind {
			t.Errorf("%s: kind = %s, want %s", test.name, kind, spec.Kind)
		}
		if !reflect.DeepEqual(roles, spec.Roles) {
			t.Errorf("%s: roles = %v, want %v", test.name, roles, spec.Roles)
		}
	}
}

func TestBindingsRejectsForeignDocuments(t *testing.T) {
	for _, doc := range []string{
		`{"mark": "bar"}`,
		`{"usermeta": {"kind": "Sparkline"}}`,
		`not json`,
	} {
		if _, _, err := Bindings([]byte(doc)); err == nil {
			t.Errorf("Bindings(%q): no error", doc)
		}
	}
}
